// Package stringinput is a single-line text editor widget: cursor motion
// by character and by word, insertion, deletion, an optional mask
// character for password-style entry, and an optional fully-hidden mode
// that still tracks every character typed.
package stringinput

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/widget"
)

// FilterFunc decides whether a typed rune is accepted and, if so, what
// rune actually gets inserted (letting a caller e.g. lower-case input).
type FilterFunc func(r rune) (rune, bool)

// NoFilter accepts every rune unchanged.
func NoFilter(r rune) (rune, bool) { return r, true }

// StringInput is a line editor. The zero value is not usable; use New.
type StringInput struct {
	value      []rune
	at         int
	mask       rune
	hasMask    bool
	hideOutput bool
	filter     FilterFunc
}

// New creates an empty StringInput that accepts runes passed by filter.
func New(filter FilterFunc) *StringInput {
	if filter == nil {
		filter = NoFilter
	}
	return &StringInput{filter: filter}
}

// WithMask renders every character as mask instead of its real value.
func (s *StringInput) WithMask(mask rune) *StringInput {
	s.mask = mask
	s.hasMask = true
	s.hideOutput = false
	return s
}

// WithHiddenOutput renders nothing at all while still recording input.
func (s *StringInput) WithHiddenOutput() *StringInput {
	s.hideOutput = true
	s.hasMask = false
	return s
}

// WithPassword is a convenience for WithMask(mask) when mask is given, or
// WithHiddenOutput otherwise.
func (s *StringInput) WithPassword(mask rune, hasMask bool) *StringInput {
	if hasMask {
		return s.WithMask(mask)
	}
	return s.WithHiddenOutput()
}

// At returns the cursor position, in runes.
func (s *StringInput) At() int { return s.at }

// SetAt moves the cursor, clamped to the value's length.
func (s *StringInput) SetAt(at int) {
	if at > len(s.value) {
		at = len(s.value)
	}
	if at < 0 {
		at = 0
	}
	s.at = at
}

// Value returns the current text.
func (s *StringInput) Value() string { return string(s.value) }

// SetValue replaces the text, clamping the cursor to fit.
func (s *StringInput) SetValue(v string) {
	s.value = []rune(v)
	s.SetAt(s.at)
}

// HasValue reports whether any character has ever been typed.
func (s *StringInput) HasValue() bool { return s.value != nil }

// Finish returns the final value, or "" with ok=false if nothing was ever
// typed (as opposed to typed then fully deleted, which returns "", true).
func (s *StringInput) Finish() (string, bool) {
	if !s.HasValue() {
		return "", false
	}
	return s.Value(), true
}

func wordStarts(s []rune) []int {
	str := string(s)
	var starts []int
	state := -1
	byteOff := 0
	for len(str) > 0 {
		word, rest, newState := uniseg.FirstWordInString(str, state)
		if word != "" {
			r := []rune(word)[0]
			if !unicode.IsSpace(r) {
				starts = append(starts, runeOffset(s, byteOff))
			}
		}
		byteOff += len(word)
		str = rest
		state = newState
	}
	return starts
}

// runeOffset converts a byte offset into the UTF-8 encoding of s into a
// rune index.
func runeOffset(s []rune, byteOff int) int {
	count := 0
	for i := range string(s) {
		if i >= byteOff {
			return count
		}
		count++
	}
	return count
}

func (s *StringInput) findWordLeft(at int) int {
	best := 0
	for _, w := range wordStarts(s.value) {
		if w < at {
			best = w
		} else {
			break
		}
	}
	return best
}

func (s *StringInput) findWordRight(at int) int {
	for _, w := range wordStarts(s.value) {
		if w > at {
			return w
		}
	}
	return len(s.value)
}

// deleteMovement mirrors the key bindings that delete rather than just
// move: Ctrl-u (to start), Alt/Ctrl-Backspace (prev word/char), Ctrl-k
// (to end), Alt/Ctrl-Delete (next word/char).
func (s *StringInput) deleteMovement(key widget.KeyEvent) (widget.Movement, bool) {
	var mov widget.Movement
	switch {
	case key.Code == widget.KeyChar && key.Char == 'u' && key.Modifiers.Has(widget.ModControl):
		mov = widget.MoveHome
	case key.Code == widget.KeyBackspace && key.Modifiers.Has(widget.ModAlt):
		mov = widget.MovePrevWord
	case key.Code == widget.KeyChar && key.Char == 'w' && key.Modifiers.Has(widget.ModAlt):
		mov = widget.MovePrevWord
	case key.Code == widget.KeyChar && key.Char == 'w' && key.Modifiers.Has(widget.ModControl):
		mov = widget.MovePrevWord
	case key.Code == widget.KeyBackspace:
		mov = widget.MoveLeft
	case key.Code == widget.KeyChar && key.Char == 'k' && key.Modifiers.Has(widget.ModControl):
		mov = widget.MoveEnd
	case key.Code == widget.KeyDelete && key.Modifiers.Has(widget.ModAlt):
		mov = widget.MoveNextWord
	case key.Code == widget.KeyChar && key.Char == 'd' && key.Modifiers.Has(widget.ModAlt):
		mov = widget.MoveNextWord
	case key.Code == widget.KeyChar && key.Char == 'd' && key.Modifiers.Has(widget.ModControl):
		mov = widget.MoveRight
	case key.Code == widget.KeyDelete:
		mov = widget.MoveRight
	default:
		return 0, false
	}

	switch mov {
	case widget.MoveHome, widget.MovePrevWord, widget.MoveLeft:
		return mov, s.at != 0
	case widget.MoveEnd, widget.MoveNextWord, widget.MoveRight:
		return mov, s.at != len(s.value)
	}
	return 0, false
}

// HandleKey applies one key event: deletion bindings, character insertion,
// and plain cursor motion, in that order of precedence.
func (s *StringInput) HandleKey(key widget.KeyEvent) bool {
	if mov, ok := s.deleteMovement(key); ok {
		switch mov {
		case widget.MoveHome:
			s.value = s.value[s.at:]
			s.at = 0
		case widget.MovePrevWord:
			prev := s.findWordLeft(s.at)
			s.value = append(s.value[:prev], s.value[s.at:]...)
			s.at = prev
		case widget.MoveLeft:
			s.at--
			s.value = append(s.value[:s.at], s.value[s.at+1:]...)
		case widget.MoveEnd:
			s.value = s.value[:s.at]
		case widget.MoveNextWord:
			next := s.findWordRight(s.at)
			s.value = append(s.value[:s.at], s.value[next:]...)
		case widget.MoveRight:
			s.value = append(s.value[:s.at], s.value[s.at+1:]...)
		}
		return true
	}

	if key.Code == widget.KeyChar && key.Modifiers&(widget.ModControl|widget.ModAlt) == 0 {
		if c, ok := s.filter(key.Char); ok {
			if s.at == len(s.value) {
				s.value = append(s.value, c)
			} else {
				s.value = append(s.value[:s.at], append([]rune{c}, s.value[s.at:]...)...)
			}
			s.at++
			return true
		}
	}

	mov, ok := widget.MovementFromKey(key)
	if !ok {
		return false
	}
	switch mov {
	case widget.MovePrevWord:
		if s.at != 0 {
			s.at = s.findWordLeft(s.at)
			return true
		}
	case widget.MoveLeft:
		if s.at != 0 {
			s.at--
			return true
		}
	case widget.MoveNextWord:
		if s.at != len(s.value) {
			s.at = s.findWordRight(s.at)
			return true
		}
	case widget.MoveRight:
		if s.at != len(s.value) {
			s.at++
			return true
		}
	case widget.MoveHome:
		if s.at != 0 {
			s.at = 0
			return true
		}
	case widget.MoveEnd:
		if s.at != len(s.value) {
			s.at = len(s.value)
			return true
		}
	}

	return false
}

// Height reports how many terminal lines the value occupies given the
// available width, advancing layout's offsets the way Render's output
// will consume them.
func (s *StringInput) Height(l *layout.Layout) uint16 {
	if s.hideOutput {
		return 1
	}

	width := uint16(len(s.value))
	if width > l.LineWidth() {
		width -= l.LineWidth()
		l.LineOffset = width % l.Width
		l.OffsetY += 1 + width/l.Width
		return 2 + width/l.Width
	}
	l.LineOffset += width
	return 1
}

// Render writes the value (or its mask) to b; the terminal wraps long
// lines on its own.
func (s *StringInput) Render(l *layout.Layout, b backend.Backend) error {
	if s.hideOutput {
		return nil
	}

	if s.hasMask {
		_, err := b.Write([]byte(strings.Repeat(string(s.mask), len(s.value))))
		if err != nil {
			return err
		}
	} else {
		if _, err := b.Write([]byte(string(s.value))); err != nil {
			return err
		}
	}

	s.Height(l)
	return nil
}

// CursorPos reports where the cursor sits relative to layout.
func (s *StringInput) CursorPos(l layout.Layout) (x, y uint16) {
	if s.hideOutput {
		return l.LineOffset, 0
	}
	if l.LineWidth() > uint16(s.at) {
		return l.LineOffset + uint16(s.at), 0
	}
	at := uint16(s.at) - l.LineWidth()
	return at % l.Width, 1 + at/l.Width
}

var _ widget.Widget = (*StringInput)(nil)
