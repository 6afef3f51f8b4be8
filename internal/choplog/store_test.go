package choplog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "choplog_test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_MigratesOnOpen(t *testing.T) {
	store := newTestStore(t)

	version, dirty, err := store.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(2), version)
}

func TestStore_MigrateUpIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	// NewStore already migrated; a second pass must be a no-op, not an error.
	require.NoError(t, store.MigrateUp())
}

func TestStore_SaveAndLoadSession(t *testing.T) {
	store := newTestStore(t)

	id := uuid.New()
	openedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Direction: Sent, Payload: "freq?\r", Timestamp: openedAt.Add(10 * time.Millisecond)},
		{Direction: Received, Payload: "freq?\r63.5OK\r", Timestamp: openedAt.Add(20 * time.Millisecond)},
		{Direction: Sent, Payload: "enable=1\r", Timestamp: openedAt.Add(30 * time.Millisecond)},
	}
	require.NoError(t, store.SaveSession(id, "/dev/ttyUSB0", openedAt, entries))

	sessions, err := store.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
	assert.Equal(t, "/dev/ttyUSB0", sessions[0].Port)
	assert.True(t, sessions[0].OpenedAt.Equal(openedAt))

	got, err := store.SessionEntries(id)
	require.NoError(t, err)
	require.Len(t, got, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i].Direction, got[i].Direction, "entry %d", i)
		assert.Equal(t, entries[i].Payload, got[i].Payload, "entry %d", i)
		assert.True(t, entries[i].Timestamp.Equal(got[i].Timestamp), "entry %d", i)
	}
}

func TestStore_DuplicateSessionFails(t *testing.T) {
	store := newTestStore(t)

	id := uuid.New()
	require.NoError(t, store.SaveSession(id, "/dev/ttyUSB0", time.Now().UTC(), nil))
	require.Error(t, store.SaveSession(id, "/dev/ttyUSB0", time.Now().UTC(), nil))
}

func TestStore_EmptySession(t *testing.T) {
	store := newTestStore(t)

	id := uuid.New()
	require.NoError(t, store.SaveSession(id, "/dev/ttyUSB0", time.Now().UTC(), nil))

	entries, err := store.SessionEntries(id)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choplog_reopen.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, store.SaveSession(id, "/dev/ttyUSB0", time.Now().UTC(), []Entry{
		{Direction: Sent, Payload: "ref?\r", Timestamp: time.Now().UTC()},
	}))
	require.NoError(t, store.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.SessionEntries(id)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
