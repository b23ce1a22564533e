package backend

import (
	"fmt"
	"io"
)

// readCursorPositionReport reads the CPR reply a terminal sends in response
// to a DSR (ESC '[' '6' 'n') query — "ESC '[' row ';' col 'R'" — directly
// off r, one byte at a time. Reading one byte at a time (rather than
// through a bufio.Reader) matters: this runs once, synchronously, before
// the caller's event reader starts consuming the same stream, and must not
// buffer ahead into bytes that belong to the user's first real keystroke.
// Mirrors the round trip termion's cursor::DetectCursorPos and crossterm's
// cursor::position() perform. The reply is 1-indexed; the returned x, y
// are 0-indexed to match the rest of this package's coordinates.
func readCursorPositionReport(r io.Reader) (x, y uint16, err error) {
	var buf [1]byte
	readByte := func() (byte, error) {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return buf[0], nil
	}

	for {
		c, err := readByte()
		if err != nil {
			return 0, 0, err
		}
		if c == 0x1b {
			break
		}
	}
	if c, err := readByte(); err != nil {
		return 0, 0, err
	} else if c != '[' {
		return 0, 0, fmt.Errorf("backend: malformed cursor position report")
	}

	row, err := readCPRDigits(readByte, ';')
	if err != nil {
		return 0, 0, err
	}
	col, err := readCPRDigits(readByte, 'R')
	if err != nil {
		return 0, 0, err
	}
	if row == 0 || col == 0 {
		return 0, 0, fmt.Errorf("backend: cursor position report out of range")
	}
	return uint16(col - 1), uint16(row - 1), nil
}

// readCPRDigits accumulates decimal digits until terminator, which is
// consumed but not included in the result.
func readCPRDigits(readByte func() (byte, error), terminator byte) (int, error) {
	n := 0
	for {
		c, err := readByte()
		if err != nil {
			return 0, err
		}
		if c == terminator {
			return n, nil
		}
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("backend: malformed cursor position report")
		}
		n = n*10 + int(c-'0')
	}
}
