package backend

import (
	"fmt"
	"strings"

	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/style"
)

// Cell is one character position of a TestBackend's grid. Value is nil for
// a cell that has never been written (rendered as a space in Snapshot).
type Cell struct {
	Value      *rune
	Fg, Bg     style.Color
	Attributes style.Attributes
}

// TestBackend is an in-memory Backend for assertions in widget tests: it
// records exactly what a real terminal would show without needing a PTY.
// Rows accumulate as a scroll-back buffer; only the `height` rows starting
// at the viewport's top row participate in Equal and Snapshot.
type TestBackend struct {
	width, height uint16

	rows        [][]Cell
	viewportTop int

	cursorX, cursorY uint16
	cursorHidden     bool
	rawMode          bool

	fg, bg     style.Color
	attributes style.Attributes
}

// NewTestBackend creates a backend with the given viewport size and one
// blank viewport's worth of rows.
func NewTestBackend(width, height uint16) *TestBackend {
	t := &TestBackend{width: width, height: height}
	for i := uint16(0); i < height; i++ {
		t.rows = append(t.rows, t.blankRow())
	}
	return t
}

func (t *TestBackend) blankRow() []Cell {
	return make([]Cell, t.width)
}

func (t *TestBackend) row(y uint16) []Cell {
	idx := t.viewportTop + int(y)
	for idx >= len(t.rows) {
		t.rows = append(t.rows, t.blankRow())
	}
	return t.rows[idx]
}

func (t *TestBackend) Write(p []byte) (int, error) {
	for _, b := range p {
		switch b {
		case '\n':
			t.cursorY++
			if !t.rawMode {
				t.cursorX = 0
			}
			t.maybeScroll()
		case '\r':
			t.cursorX = 0
		case '\t':
			next := (t.cursorX/8 + 1) * 8
			if next >= t.width {
				t.cursorX = 0
				t.cursorY++
				t.maybeScroll()
			} else {
				t.cursorX = next
			}
		default:
			t.putByte(b)
		}
	}
	return len(p), nil
}

// putByte writes a single byte of (possibly multi-byte UTF-8) rune content.
// TestBackend is exercised with already-decoded text in practice, so it
// treats each byte >= 0x20 as one cell; this mirrors how a monospace
// terminal lays out any single printable rune, one byte at a time for
// ASCII, and is good enough for the assertions widget tests make.
func (t *TestBackend) putByte(b byte) {
	if b < 0x20 {
		return
	}
	if t.cursorX >= t.width {
		t.cursorX = 0
		t.cursorY++
		t.maybeScroll()
	}
	r := rune(b)
	row := t.row(t.cursorY)
	row[t.cursorX] = Cell{Value: &r, Fg: t.fg, Bg: t.bg, Attributes: t.attributes}
	t.cursorX++
}

// WriteRune writes a single decoded rune at the cursor, advancing it. Used
// by widgets that already operate on runes rather than raw bytes.
func (t *TestBackend) WriteRune(r rune) {
	if t.cursorX >= t.width {
		t.cursorX = 0
		t.cursorY++
		t.maybeScroll()
	}
	row := t.row(t.cursorY)
	rv := r
	row[t.cursorX] = Cell{Value: &rv, Fg: t.fg, Bg: t.bg, Attributes: t.attributes}
	t.cursorX++
}

func (t *TestBackend) maybeScroll() {
	for t.cursorY >= t.height {
		t.viewportTop++
		t.cursorY--
	}
}

func (t *TestBackend) EnableRawMode() error  { t.rawMode = true; return nil }
func (t *TestBackend) DisableRawMode() error { t.rawMode = false; return nil }

func (t *TestBackend) HideCursor() error { t.cursorHidden = true; return nil }
func (t *TestBackend) ShowCursor() error { t.cursorHidden = false; return nil }

func (t *TestBackend) GetCursorPos() (uint16, uint16, error) {
	return t.cursorX, t.cursorY, nil
}

func (t *TestBackend) MoveCursorTo(x, y uint16) error {
	t.cursorX, t.cursorY = x, y
	return nil
}

func (t *TestBackend) MoveCursor(dir MoveDirection) error {
	return defaultMoveCursor(t, dir)
}

// Scroll shifts the viewport by delta rows: positive scrolls content down
// (revealing scroll-back history above, stopping at the first row),
// negative scrolls content up (revealing blank rows at the bottom, growing
// the buffer as needed).
func (t *TestBackend) Scroll(delta int) error {
	t.viewportTop -= delta
	if t.viewportTop < 0 {
		t.viewportTop = 0
	}
	// Ensure enough rows exist below the new viewport.
	t.row(t.height - 1)
	return nil
}

func (t *TestBackend) SetAttributes(a style.Attributes) error {
	t.attributes = a
	return nil
}

func (t *TestBackend) RemoveAttributes(a style.Attributes) error {
	t.attributes &^= a
	return nil
}

func (t *TestBackend) SetFg(c style.Color) error { t.fg = c; return nil }
func (t *TestBackend) SetBg(c style.Color) error { t.bg = c; return nil }

func (t *TestBackend) WriteStyled(s style.Styled) error {
	return s.Write(t)
}

func (t *TestBackend) Clear(ct ClearType) error {
	switch ct {
	case ClearAll:
		for y := uint16(0); y < t.height; y++ {
			t.clearRow(y, 0, t.width)
		}
		t.cursorX, t.cursorY = 0, 0
	case ClearFromCursorDown:
		t.clearRow(t.cursorY, t.cursorX, t.width)
		for y := t.cursorY + 1; y < t.height; y++ {
			t.clearRow(y, 0, t.width)
		}
	case ClearFromCursorUp:
		t.clearRow(t.cursorY, 0, t.cursorX+1)
		for y := uint16(0); y < t.cursorY; y++ {
			t.clearRow(y, 0, t.width)
		}
	case ClearCurrentLine:
		t.clearRow(t.cursorY, 0, t.width)
	case ClearUntilNewLine:
		t.clearRow(t.cursorY, t.cursorX, t.width)
	}
	return nil
}

func (t *TestBackend) clearRow(y, from, to uint16) {
	row := t.row(y)
	for x := from; x < to && int(x) < len(row); x++ {
		row[x] = Cell{}
	}
}

func (t *TestBackend) Size() (layout.Size, error) {
	return layout.Size{Width: t.width, Height: t.height}, nil
}

// Equal compares two backends by what a user would actually see: viewport
// size, the visible cell grid, and the cursor position (only when neither
// side has it hidden). Scroll-back history above the viewport and
// transient fg/bg/attribute state left over from the last write are not
// part of the comparison.
func (t *TestBackend) Equal(other *TestBackend) bool {
	if t.width != other.width || t.height != other.height {
		return false
	}
	for y := uint16(0); y < t.height; y++ {
		a := t.visibleRow(y)
		b := other.visibleRow(y)
		for x := uint16(0); x < t.width; x++ {
			if !cellEqual(a[x], b[x]) {
				return false
			}
		}
	}
	if t.cursorHidden != other.cursorHidden {
		return false
	}
	if !t.cursorHidden && (t.cursorX != other.cursorX || t.cursorY != other.cursorY) {
		return false
	}
	return true
}

func (t *TestBackend) visibleRow(y uint16) []Cell {
	idx := t.viewportTop + int(y)
	if idx >= len(t.rows) {
		return t.blankRow()
	}
	return t.rows[idx]
}

func cellEqual(a, b Cell) bool {
	av, bv := a.Value, b.Value
	switch {
	case av == nil && bv == nil:
		return true
	case av == nil || bv == nil:
		return false
	case *av != *bv:
		return false
	}
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Attributes == b.Attributes
}

// Snapshot renders the visible viewport as a human-readable, box-drawn
// grid for use in test failure messages.
func (t *TestBackend) Snapshot() string {
	var b strings.Builder
	top := "┌" + strings.Repeat("─", int(t.width)) + "┐\n"
	bottom := "└" + strings.Repeat("─", int(t.width)) + "┘\n"
	b.WriteString(top)
	for y := uint16(0); y < t.height; y++ {
		row := t.visibleRow(y)
		b.WriteRune('│')
		for x := uint16(0); x < t.width; x++ {
			if row[x].Value == nil {
				b.WriteByte(' ')
			} else {
				b.WriteRune(*row[x].Value)
			}
		}
		b.WriteString("│\n")
	}
	b.WriteString(bottom)
	if !t.cursorHidden {
		fmt.Fprintf(&b, "cursor: (%d, %d)\n", t.cursorX, t.cursorY)
	}
	return b.String()
}
