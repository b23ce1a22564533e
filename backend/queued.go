package backend

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/majorcontext/prompt/internal/term"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/style"
	xterm "golang.org/x/term"
)

// Queued is a "crossterm-style" backend: every method appends to an
// internal buffer and nothing reaches the terminal until Flush is called.
// This lets a render pass batch many small writes into one syscall.
type Queued struct {
	f          *os.File
	buf        bytes.Buffer
	rawState   *term.RawModeState
	attributes style.Attributes
}

// NewQueued wraps f.
func NewQueued(f *os.File) *Queued {
	return &Queued{f: f}
}

func (q *Queued) Write(p []byte) (int, error) {
	return q.buf.Write(p)
}

// Flush sends every queued byte to the terminal in one write and resets
// the buffer.
func (q *Queued) Flush() error {
	if q.buf.Len() == 0 {
		return nil
	}
	_, err := q.f.Write(q.buf.Bytes())
	q.buf.Reset()
	return err
}

func (q *Queued) EnableRawMode() error {
	if q.rawState != nil {
		return nil
	}
	st, err := term.EnableRawMode(q.f)
	if err != nil {
		return err
	}
	q.rawState = st
	return nil
}

func (q *Queued) DisableRawMode() error {
	if q.rawState == nil {
		return nil
	}
	err := term.RestoreTerminal(q.rawState)
	q.rawState = nil
	return err
}

func (q *Queued) HideCursor() error {
	q.buf.WriteString(ansi.HideCursor)
	return nil
}

func (q *Queued) ShowCursor() error {
	q.buf.WriteString(ansi.ShowCursor)
	return nil
}

func (q *Queued) GetCursorPos() (uint16, uint16, error) {
	// The query/reply round trip must happen now, not on the next Flush:
	// drain whatever render output is already queued first so ordering on
	// the wire matches the caller's intent, then bypass buf entirely for
	// the query itself since it needs an immediate reply, not a batched one.
	if err := q.Flush(); err != nil {
		return 0, 0, err
	}
	if _, err := io.WriteString(q.f, "\x1b[6n"); err != nil {
		return 0, 0, err
	}
	return readCursorPositionReport(q.f)
}

func (q *Queued) MoveCursorTo(x, y uint16) error {
	q.buf.WriteString(ansi.CursorPosition(int(x)+1, int(y)+1))
	return nil
}

func (q *Queued) MoveCursor(dir MoveDirection) error {
	switch dir.kind {
	case moveNextLine:
		if dir.n == 1 {
			q.buf.WriteString("\n\r")
			return nil
		}
		q.buf.WriteString(ansi.CursorDown(int(dir.n)))
		q.buf.WriteString("\r")
		return nil
	case moveUp:
		q.buf.WriteString(ansi.CursorUp(int(dir.n)))
		return nil
	case moveDown:
		q.buf.WriteString(ansi.CursorDown(int(dir.n)))
		return nil
	case moveLeft:
		q.buf.WriteString(ansi.CursorBackward(int(dir.n)))
		return nil
	case moveRight:
		q.buf.WriteString(ansi.CursorForward(int(dir.n)))
		return nil
	case movePrevLine:
		q.buf.WriteString(ansi.CursorUp(int(dir.n)))
		q.buf.WriteString("\r")
		return nil
	case moveColumn:
		q.buf.WriteString("\x1b[" + strconv.Itoa(int(dir.n)+1) + "G")
		return nil
	}
	return defaultMoveCursor(q, dir)
}

func (q *Queued) Scroll(delta int) error {
	if delta == 0 {
		return nil
	}
	if delta < 0 {
		q.buf.WriteString(ansi.ScrollUp(-delta))
		return nil
	}
	q.buf.WriteString(ansi.ScrollDown(delta))
	return nil
}

func (q *Queued) SetAttributes(a style.Attributes) error {
	diff := q.attributes.Diff(a)
	if codes := diff.ToRemove.SGRUnsetCodes(); len(codes) > 0 {
		q.buf.WriteString(ansi.SGR(strings.Join(codes, ";")))
	}
	if codes := diff.ToAdd.SGRSetCodes(); len(codes) > 0 {
		q.buf.WriteString(ansi.SGR(strings.Join(codes, ";")))
	}
	q.attributes = a
	return nil
}

func (q *Queued) RemoveAttributes(a style.Attributes) error {
	return q.SetAttributes(q.attributes &^ a)
}

func (q *Queued) SetFg(c style.Color) error {
	q.buf.WriteString(ansi.SGR(c.FgSGR()))
	return nil
}

func (q *Queued) SetBg(c style.Color) error {
	q.buf.WriteString(ansi.SGR(c.BgSGR()))
	return nil
}

func (q *Queued) WriteStyled(s style.Styled) error {
	return s.Write(q)
}

func (q *Queued) Clear(ct ClearType) error {
	switch ct {
	case ClearAll:
		q.buf.WriteString(ansi.EraseEntireDisplay)
		q.buf.WriteString(ansi.CursorPosition(1, 1))
	case ClearFromCursorDown:
		q.buf.WriteString(ansi.EraseScreenBelow)
	case ClearFromCursorUp:
		q.buf.WriteString(ansi.EraseScreenAbove)
	case ClearCurrentLine:
		q.buf.WriteString(ansi.EraseEntireLine)
	case ClearUntilNewLine:
		q.buf.WriteString(ansi.EraseLineRight)
	}
	return nil
}

func (q *Queued) Size() (layout.Size, error) {
	w, h, err := xterm.GetSize(int(q.f.Fd()))
	if err != nil {
		return layout.Size{}, err
	}
	return layout.Size{Width: uint16(w), Height: uint16(h)}, nil
}
