package chopper

import (
	"strconv"
	"strings"
)

const (
	// trailerLen is the fixed number of terminator/prompt bytes the device
	// appends after the numeric payload of every query reply.
	trailerLen = 3

	// replyBudget is the maximum reply size read per query. 15 bytes covers
	// every reply the device produces.
	replyBudget = 15
)

// decodeReply extracts the numeric payload from a raw query reply. The device
// echoes the outgoing command, then the value, then a fixed 3-byte trailer,
// with no delimiters; the payload is recovered by skipping exactly cmdLen
// bytes and dropping the trailer. This fixed-offset slicing is part of the
// wire protocol and must not be generalised into a line parser.
func decodeReply(cmd string, buf []byte) (float64, error) {
	if len(buf) < len(cmd)+trailerLen {
		return 0, &ParseError{Command: cmd, Reply: buf, Err: ErrShortReply}
	}

	payload := string(buf[len(cmd) : len(buf)-trailerLen])
	value, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
	if err != nil {
		return 0, &ParseError{Command: cmd, Reply: buf, Err: err}
	}
	return value, nil
}

// formatValue renders a parameter value as its natural decimal string:
// integral values get no fractional part, everything else the shortest exact
// representation.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
