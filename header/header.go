// Package header renders the "? message (hint) ›" line every prompt
// starts with: a green "?", the bold message, then either a dim-grey
// delimited hint or a small arrow when no hint is set.
package header

import (
	"fmt"

	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/style"
	"github.com/majorcontext/prompt/widget"
)

// Delimiter wraps a hint in a pair of characters, or not at all.
type Delimiter struct {
	start, end rune
	none       bool
}

var (
	Parentheses  = Delimiter{'(', ')', false}
	Braces       = Delimiter{'{', '}', false}
	SquareBracket = Delimiter{'[', ']', false}
	AngleBracket = Delimiter{'<', '>', false}
	NoDelimiter  = Delimiter{none: true}
)

// Other builds a delimiter out of an arbitrary character pair.
func Other(start, end rune) Delimiter { return Delimiter{start, end, false} }

const smallArrow = "›"
const tick = "✔"
const middleDot = "·"

// Header is the Prompt widget: a message plus an optional hint.
type Header struct {
	Message string
	Hint    string
	HasHint bool
	Delim   Delimiter

	messageLen uint16
	hintLen    uint16
}

// New creates a Header with no hint and the default (parentheses) delimiter.
func New(message string) *Header {
	return &Header{Message: message, Delim: Parentheses, messageLen: uint16(len([]rune(message)))}
}

// WithHint sets the hint text, shown delimited after the message.
func (h *Header) WithHint(hint string) *Header {
	h.Hint = hint
	h.HasHint = true
	h.hintLen = uint16(len([]rune(hint)))
	return h
}

// WithOptionalHint calls WithHint only when has is true.
func (h *Header) WithOptionalHint(hint string, has bool) *Header {
	if has {
		return h.WithHint(hint)
	}
	return h
}

// WithDelim sets the hint delimiter; ignored when no hint is set.
func (h *Header) WithDelim(d Delimiter) *Header {
	h.Delim = d
	return h
}

// hintWidth is the hint's on-screen width including its delimiter, 0 when
// there is no hint.
func (h *Header) hintWidth() uint16 {
	if !h.HasHint {
		return 0
	}
	if h.Delim.none {
		return h.hintLen
	}
	return h.hintLen + 2
}

// Width is the character length of the fully rendered header.
func (h *Header) Width() uint16 {
	if h.HasHint {
		// "? <message> <hint> "
		return 2 + h.messageLen + 1 + h.hintWidth() + 1
	}
	// "? <message> › "
	return 2 + h.messageLen + 3
}

func (h *Header) cursorPosImpl(l layout.Layout) (x, y uint16) {
	width := h.Width()
	if width > l.LineWidth() {
		width -= l.LineWidth()
		return width % l.Width, 1 + width/l.Width
	}
	return l.LineOffset + width, 0
}

// Render writes the header and advances layout's cursor bookkeeping to
// just past it.
func (h *Header) Render(l *layout.Layout, b backend.Backend) error {
	if err := b.WriteStyled(style.New(style.Str("? ")).WithFg(style.LightGreen)); err != nil {
		return err
	}
	if err := b.WriteStyled(style.New(style.Str(h.Message)).Bold()); err != nil {
		return err
	}
	if _, err := b.Write([]byte(" ")); err != nil {
		return err
	}

	if err := b.SetFg(style.DarkGrey); err != nil {
		return err
	}
	switch {
	case h.HasHint && !h.Delim.none:
		if _, err := fmt.Fprintf(b, "%c%s%c", h.Delim.start, h.Hint, h.Delim.end); err != nil {
			return err
		}
	case h.HasHint:
		if _, err := b.Write([]byte(h.Hint)); err != nil {
			return err
		}
	default:
		if _, err := b.Write([]byte(smallArrow)); err != nil {
			return err
		}
	}
	if err := b.SetFg(style.Reset); err != nil {
		return err
	}
	if _, err := b.Write([]byte(" ")); err != nil {
		return err
	}

	x, y := h.cursorPosImpl(*l)
	l.LineOffset = x
	l.OffsetY += y
	return nil
}

// Height reports the rows the header occupies and advances the cursor
// bookkeeping the same way Render's output would. cursorPosImpl's y is a
// row count relative to the entering line, so it accumulates into
// l.OffsetY rather than replacing it — otherwise any offset a prior
// sibling left behind would be discarded.
func (h *Header) Height(l *layout.Layout) uint16 {
	x, y := h.cursorPosImpl(*l)
	l.LineOffset = x
	l.OffsetY += y
	return y + 1
}

// CursorPos is where editing for the answer should resume, right after
// the rendered header.
func (h *Header) CursorPos(l layout.Layout) (x, y uint16) {
	return h.cursorPosImpl(l)
}

// HandleKey never consumes input: the header is read-only.
func (h *Header) HandleKey(widget.KeyEvent) bool { return false }

// WriteFinishedMessage prints the "✔ message · " line shown once a prompt
// has been answered, replacing the interactive header.
func WriteFinishedMessage(message string, b backend.Backend) error {
	if err := b.WriteStyled(style.New(style.Str(tick)).WithFg(style.LightGreen)); err != nil {
		return err
	}
	if _, err := b.Write([]byte(" ")); err != nil {
		return err
	}
	if err := b.WriteStyled(style.New(style.Str(message)).Bold()); err != nil {
		return err
	}
	if _, err := b.Write([]byte(" ")); err != nil {
		return err
	}
	if err := b.WriteStyled(style.New(style.Str(middleDot)).WithFg(style.DarkGrey)); err != nil {
		return err
	}
	_, err := b.Write([]byte(" "))
	return err
}

var _ widget.Widget = (*Header)(nil)
