package backend

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadCursorPositionReport(t *testing.T) {
	tests := []struct {
		reply string
		x, y  uint16
	}{
		{"\x1b[1;1R", 0, 0},
		{"\x1b[10;21R", 20, 9},
		{"garbage before\x1b[5;3R", 2, 4},
	}
	for _, tt := range tests {
		x, y, err := readCursorPositionReport(strings.NewReader(tt.reply))
		if err != nil {
			t.Fatalf("readCursorPositionReport(%q): %v", tt.reply, err)
		}
		if x != tt.x || y != tt.y {
			t.Errorf("readCursorPositionReport(%q) = (%d, %d), want (%d, %d)", tt.reply, x, y, tt.x, tt.y)
		}
	}
}

func TestReadCursorPositionReportMalformed(t *testing.T) {
	tests := []string{
		"\x1b[1,1R",
		"\x1b(1;1R",
		"\x1b[0;0R",
	}
	for _, reply := range tests {
		if _, _, err := readCursorPositionReport(strings.NewReader(reply)); err == nil {
			t.Errorf("readCursorPositionReport(%q): expected an error", reply)
		}
	}
}

func TestReadCursorPositionReportTruncated(t *testing.T) {
	if _, _, err := readCursorPositionReport(bytes.NewReader(nil)); err == nil {
		t.Error("expected an error reading an empty stream")
	}
}
