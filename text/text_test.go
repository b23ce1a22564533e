package text

import (
	"strings"
	"testing"

	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/widget"
)

func TestHeightSingleLine(t *testing.T) {
	tx := New("short")
	l := layout.New(0, layout.Size{Width: 80, Height: 24})
	if got, want := tx.Height(&l), uint16(1); got != want {
		t.Fatalf("Height() = %d, want %d", got, want)
	}
	if l.OffsetY != 1 {
		t.Errorf("OffsetY after Height = %d, want 1", l.OffsetY)
	}
}

func TestHeightAccumulatesOffsetY(t *testing.T) {
	tx := New("short")
	l := layout.New(0, layout.Size{Width: 80, Height: 24}).WithOffset(0, 4)
	tx.Height(&l)
	if l.OffsetY != 5 {
		t.Errorf("OffsetY after Height = %d, want 5 (4 + 1)", l.OffsetY)
	}
}

func TestHeightWraps(t *testing.T) {
	tx := New("one two three four five")
	l := layout.New(0, layout.Size{Width: 9, Height: 24})
	height := tx.Height(&l)
	if height <= 1 {
		t.Fatalf("Height() = %d, want > 1 for text wider than the line", height)
	}
	if l.OffsetY != height {
		t.Errorf("OffsetY after Height = %d, want %d", l.OffsetY, height)
	}
}

func TestHeightClippedToMaxHeight(t *testing.T) {
	tx := New("one two three four five six seven")
	l := layout.New(0, layout.Size{Width: 9, Height: 24}).WithMaxHeight(2)
	if got, want := tx.Height(&l), uint16(2); got != want {
		t.Fatalf("Height() = %d, want clipped to MaxHeight %d", got, want)
	}
}

func TestRenderSingleLine(t *testing.T) {
	tx := New("hello")
	b := backend.NewTestBackend(20, 3)
	l := layout.New(0, layout.Size{Width: 20, Height: 3})
	if err := tx.Render(&l, b); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := backend.NewTestBackend(20, 3)
	if _, err := want.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	want.MoveCursorTo(0, 1)
	if !b.Equal(want) {
		t.Errorf("Render output mismatch:\n%s\nvs\n%s", b.Snapshot(), want.Snapshot())
	}
}

func TestRenderMultilineWritesEveryLine(t *testing.T) {
	tx := New("one two three four five")
	b := backend.NewTestBackend(9, 10)
	l := layout.New(0, layout.Size{Width: 9, Height: 10})
	if err := tx.Render(&l, b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	snap := b.Snapshot()
	if !strings.Contains(snap, "one") || !strings.Contains(snap, "five") {
		t.Errorf("Render() snapshot missing wrapped content:\n%s", snap)
	}
}

func TestCursorPos(t *testing.T) {
	tx := New("hello")
	l := layout.New(3, layout.Size{Width: 20, Height: 3})
	x, y := tx.CursorPos(l)
	if x != 3 || y != 0 {
		t.Errorf("CursorPos() = (%d, %d), want (3, 0)", x, y)
	}
}

func TestHandleKeyNeverHandled(t *testing.T) {
	tx := New("hello")
	if tx.HandleKey(widget.KeyEvent{Code: widget.KeyEnter}) {
		t.Error("Text.HandleKey should never report handled")
	}
}

func TestForceRecompute(t *testing.T) {
	tx := New("hello")
	l := layout.New(0, layout.Size{Width: 80, Height: 24})
	tx.Height(&l)

	tx.Value = "a much longer value that should need rewrapping on the next call"
	tx.ForceRecompute()

	l2 := layout.New(0, layout.Size{Width: 10, Height: 24})
	height := tx.Height(&l2)
	if height <= 1 {
		t.Errorf("Height() after ForceRecompute = %d, want > 1 for the longer value", height)
	}
}
