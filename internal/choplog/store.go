package choplog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists session logs to sqlite. The schema is managed by embedded
// migrations (see migrate.go).
type Store struct {
	*sql.DB
}

// NewStore opens (or creates) the sqlite database at path and brings the
// schema up to date.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log database %s: %w", path, err)
	}

	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// SessionRecord describes one persisted controller session.
type SessionRecord struct {
	ID       uuid.UUID
	Port     string
	OpenedAt time.Time
}

// SaveSession stores a session header and its entries in record order inside
// a single transaction.
func (s *Store) SaveSession(id uuid.UUID, port string, openedAt time.Time, entries []Entry) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (session_id, port, opened_at) VALUES (?, ?, ?)`,
		id.String(), port, openedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session %s: %w", id, err)
	}

	for seq, e := range entries {
		_, err = tx.Exec(
			`INSERT INTO entries (session_id, seq, direction, payload, recorded_at)
			 VALUES (?, ?, ?, ?, ?)`,
			id.String(), seq, e.Direction.String(), e.Payload,
			e.Timestamp.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry %d of session %s: %w", seq, id, err)
		}
	}

	return tx.Commit()
}

// Sessions lists all persisted sessions, most recent first.
func (s *Store) Sessions() ([]SessionRecord, error) {
	rows, err := s.Query(`SELECT session_id, port, opened_at FROM sessions ORDER BY opened_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var rawID, rawOpened string
		if err := rows.Scan(&rawID, &rec.Port, &rawOpened); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		if rec.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("invalid session id %q: %w", rawID, err)
		}
		if rec.OpenedAt, err = time.Parse(time.RFC3339Nano, rawOpened); err != nil {
			return nil, fmt.Errorf("invalid opened_at %q: %w", rawOpened, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SessionEntries returns the entries of one session in record order.
func (s *Store) SessionEntries(id uuid.UUID) ([]Entry, error) {
	rows, err := s.Query(
		`SELECT direction, payload, recorded_at FROM entries WHERE session_id = ? ORDER BY seq`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for session %s: %w", id, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var rawDir, rawAt string
		if err := rows.Scan(&rawDir, &e.Payload, &rawAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		switch rawDir {
		case Sent.String():
			e.Direction = Sent
		case Received.String():
			e.Direction = Received
		default:
			return nil, fmt.Errorf("unknown direction %q in session %s", rawDir, id)
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, rawAt); err != nil {
			return nil, fmt.Errorf("invalid recorded_at %q: %w", rawAt, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
