// Package text is a read-only widget that wraps a string across multiple
// lines to fit the available width, caching the wrapped form between
// renders.
package text

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/widget"
)

// spaces is reused as an indent prefix so the common case (a small line
// offset) needs no allocation.
const spaces = "                                                                                                                                                                                                        "

// Text renders a (possibly long) string wrapped to the layout's available
// width. Re-wrapping only happens when the width or line offset actually
// changed since the last render.
type Text struct {
	Value string

	wrapped    string
	width      uint16
	lineOffset uint16
	computed   bool
}

// New wraps value for display.
func New(value string) *Text {
	return &Text{Value: value}
}

// ForceRecompute discards the cached wrap so the next Height/Render
// recomputes it even if the layout is unchanged — needed after Value is
// mutated directly.
func (t *Text) ForceRecompute() {
	t.computed = false
}

func indent(n uint16) string {
	if int(n) <= len(spaces) {
		return spaces[:n]
	}
	return strings.Repeat(" ", int(n))
}

func fill(text string, l layout.Layout) string {
	width := int(l.AvailableWidth())
	if width < 1 {
		width = 1
	}
	prefix := indent(l.LineOffset)
	wrapped := wordwrap.String(prefix+text, width)
	return strings.TrimPrefix(wrapped, prefix)
}

func (t *Text) maxHeight(l layout.Layout) uint16 {
	width := l.AvailableWidth()
	if !t.computed || t.width != width || t.lineOffset != l.LineOffset {
		t.wrapped = fill(t.Value, l)
		t.width = width
		t.lineOffset = l.LineOffset
		t.computed = true
	}
	if t.wrapped == "" {
		return 1
	}
	return uint16(strings.Count(t.wrapped, "\n") + 1)
}

// Height returns the number of rows the wrapped text will occupy, clipped
// to l.MaxHeight, and advances l.OffsetY past them.
func (t *Text) Height(l *layout.Layout) uint16 {
	height := t.maxHeight(*l)
	if height > l.MaxHeight {
		height = l.MaxHeight
	}
	l.OffsetY += height
	l.LineOffset = 0
	return height
}

// Render writes the wrapped lines, clipped to l.RenderRegion/l.MaxHeight
// when the text doesn't fit.
func (t *Text) Render(l *layout.Layout, b backend.Backend) error {
	height := t.maxHeight(*l)

	lines := strings.Split(t.wrapped, "\n")

	if height == 1 {
		if _, err := b.Write([]byte(t.wrapped)); err != nil {
			return err
		}
		l.OffsetY++
		if err := b.MoveCursorTo(l.OffsetX, l.OffsetY); err != nil {
			return err
		}
		l.LineOffset = 0
		return nil
	}

	start := l.GetStart(height)
	nlines := height
	if nlines > l.MaxHeight {
		nlines = l.MaxHeight
	}

	i := uint16(0)
	for idx := start; idx < uint16(len(lines)) && i < nlines; idx, i = idx+1, i+1 {
		if _, err := b.Write([]byte(lines[idx])); err != nil {
			return err
		}
		if err := b.MoveCursorTo(l.OffsetX, l.OffsetY+i+1); err != nil {
			return err
		}
	}
	l.OffsetY += nlines
	l.LineOffset = 0
	return nil
}

// CursorPos always reports the location of the first character.
func (t *Text) CursorPos(l layout.Layout) (x, y uint16) {
	return l.LineOffset, 0
}

// HandleKey never consumes input: Text is read-only.
func (t *Text) HandleKey(widget.KeyEvent) bool { return false }

var _ widget.Widget = (*Text)(nil)
