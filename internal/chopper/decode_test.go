package chopper

import (
	"errors"
	"testing"
)

func TestDecodeReply(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		buf  string
		want float64
	}{
		{"frequency reply", "freq?\r", "freq?\r63.00OK\r", 63.0},
		{"integral value", "blade?\r", "blade?\r4OK\r", 4.0},
		{"reference mode", "ref?\r", "ref?\r1OK\r", 1.0},
		{"negative payload", "input?\r", "input?\r-0.5OK\r", -0.5},
		{"exact trailer boundary", "enable?\r", "enable?\r1OK\r", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeReply(tt.cmd, []byte(tt.buf))
			if err != nil {
				t.Fatalf("decodeReply(%q, %q) error = %v", tt.cmd, tt.buf, err)
			}
			if got != tt.want {
				t.Errorf("decodeReply(%q, %q) = %g, want %g", tt.cmd, tt.buf, got, tt.want)
			}
		})
	}
}

// The decode contract: the device echoes the full 6-byte command `freq?\r`,
// so skipping 6 bytes and dropping the 3-byte trailer leaves `63.00`.
func TestDecodeReply_FixedOffsetContract(t *testing.T) {
	got, err := decodeReply("freq?\r", []byte("freq?\r63.00XXX"))
	if err != nil {
		t.Fatalf("decodeReply error = %v", err)
	}
	if got != 63.0 {
		t.Errorf("decodeReply = %g, want 63.0", got)
	}
}

func TestDecodeReply_ShortReply(t *testing.T) {
	tests := []struct {
		name string
		buf  string
	}{
		{"empty buffer (timeout)", ""},
		{"echo only", "freq?\r"},
		{"one byte short of echo plus trailer", "freq?\rOK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeReply("freq?\r", []byte(tt.buf))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if !errors.Is(err, ErrShortReply) {
				t.Errorf("error = %v, want ErrShortReply", err)
			}
		})
	}
}

func TestDecodeReply_NonNumericPayload(t *testing.T) {
	_, err := decodeReply("freq?\r", []byte("freq?\rgarbageOK\r"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if errors.Is(err, ErrShortReply) {
		t.Error("non-numeric payload must not report as short reply")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{63.5, "63.5"},
		{63.0, "63"},
		{4, "4"},
		{0, "0"},
		{0.25, "0.25"},
		{1000, "1000"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
