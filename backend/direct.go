package backend

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/majorcontext/prompt/internal/term"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/style"
	xterm "golang.org/x/term"
)

// Direct is a "termion-style" backend: it owns a raw-mode guard on a
// *os.File and writes every escape sequence straight to it as soon as a
// method is called, with no internal queue.
type Direct struct {
	f          *os.File
	rawState   *term.RawModeState
	attributes style.Attributes
}

// NewDirect wraps f (typically os.Stdout, which must also be the
// controlling terminal for raw-mode + size queries to succeed).
func NewDirect(f *os.File) *Direct {
	return &Direct{f: f}
}

func (d *Direct) Write(p []byte) (int, error) { return d.f.Write(p) }

func (d *Direct) EnableRawMode() error {
	if d.rawState != nil {
		return nil
	}
	st, err := term.EnableRawMode(d.f)
	if err != nil {
		return err
	}
	d.rawState = st
	return nil
}

func (d *Direct) DisableRawMode() error {
	if d.rawState == nil {
		return nil
	}
	err := term.RestoreTerminal(d.rawState)
	d.rawState = nil
	return err
}

func (d *Direct) HideCursor() error {
	_, err := io.WriteString(d.f, "\x1b[?25l")
	return err
}

func (d *Direct) ShowCursor() error {
	_, err := io.WriteString(d.f, "\x1b[?25h")
	return err
}

func (d *Direct) GetCursorPos() (uint16, uint16, error) {
	if _, err := io.WriteString(d.f, "\x1b[6n"); err != nil {
		return 0, 0, err
	}
	return readCursorPositionReport(d.f)
}

func (d *Direct) MoveCursorTo(x, y uint16) error {
	_, err := fmt.Fprintf(d.f, "\x1b[%d;%dH", y+1, x+1)
	return err
}

func (d *Direct) MoveCursor(dir MoveDirection) error {
	switch dir.kind {
	case moveNextLine:
		if dir.n == 1 {
			_, err := io.WriteString(d.f, "\n\r")
			return err
		}
	case moveUp:
		_, err := fmt.Fprintf(d.f, "\x1b[%dA", dir.n)
		return err
	case moveDown:
		_, err := fmt.Fprintf(d.f, "\x1b[%dB", dir.n)
		return err
	case moveRight:
		_, err := fmt.Fprintf(d.f, "\x1b[%dC", dir.n)
		return err
	case moveLeft:
		_, err := fmt.Fprintf(d.f, "\x1b[%dD", dir.n)
		return err
	}
	return defaultMoveCursor(d, dir)
}

func (d *Direct) Scroll(delta int) error {
	if delta == 0 {
		return nil
	}
	if delta < 0 {
		_, err := fmt.Fprintf(d.f, "\x1b[%dS", -delta)
		return err
	}
	_, err := fmt.Fprintf(d.f, "\x1b[%dT", delta)
	return err
}

func (d *Direct) SetAttributes(a style.Attributes) error {
	diff := d.attributes.Diff(a)
	if codes := diff.ToRemove.SGRUnsetCodes(); len(codes) > 0 {
		if _, err := fmt.Fprintf(d.f, "\x1b[%sm", strings.Join(codes, ";")); err != nil {
			return err
		}
	}
	if codes := diff.ToAdd.SGRSetCodes(); len(codes) > 0 {
		if _, err := fmt.Fprintf(d.f, "\x1b[%sm", strings.Join(codes, ";")); err != nil {
			return err
		}
	}
	d.attributes = a
	return nil
}

func (d *Direct) RemoveAttributes(a style.Attributes) error {
	return d.SetAttributes(d.attributes &^ a)
}

func (d *Direct) SetFg(c style.Color) error {
	_, err := fmt.Fprintf(d.f, "\x1b[%sm", c.FgSGR())
	return err
}

func (d *Direct) SetBg(c style.Color) error {
	_, err := fmt.Fprintf(d.f, "\x1b[%sm", c.BgSGR())
	return err
}

func (d *Direct) WriteStyled(s style.Styled) error {
	return s.Write(d)
}

func (d *Direct) Clear(ct ClearType) error {
	var seq string
	switch ct {
	case ClearAll:
		seq = "\x1b[2J\x1b[H"
	case ClearFromCursorDown:
		seq = "\x1b[J"
	case ClearFromCursorUp:
		seq = "\x1b[1J"
	case ClearCurrentLine:
		seq = "\x1b[2K"
	case ClearUntilNewLine:
		seq = "\x1b[K"
	}
	_, err := io.WriteString(d.f, seq)
	return err
}

func (d *Direct) Size() (layout.Size, error) {
	w, h, err := xterm.GetSize(int(d.f.Fd()))
	if err != nil {
		return layout.Size{}, err
	}
	return layout.Size{Width: uint16(w), Height: uint16(h)}, nil
}
