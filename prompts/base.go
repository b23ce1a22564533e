// Package prompts is a thin demonstration layer of concrete prompt kinds
// (Confirm, Input, Choice) composed entirely from the core widgets:
// header.Header for the "? message (hint) ›" line, and either
// stringinput.StringInput or selectlist.Select for the answer itself.
package prompts

import (
	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/header"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/widget"
)

// base glues a Header to an answer widget: the header renders first and
// the answer widget continues on the header's last line, the same way
// every concrete prompt in this package is built.
type base[B widget.Widget] struct {
	Header *header.Header
	Body   B
}

func (p *base[B]) Height(l *layout.Layout) uint16 {
	start := l.OffsetY
	p.Header.Height(l)
	p.Body.Height(l)
	return l.OffsetY - start + 1
}

func (p *base[B]) Render(l *layout.Layout, b backend.Backend) error {
	if err := p.Header.Render(l, b); err != nil {
		return err
	}
	return p.Body.Render(l, b)
}

func (p *base[B]) CursorPos(l layout.Layout) (x, y uint16) {
	hx, hy := p.Header.CursorPos(l)
	l.LineOffset = hx
	l.OffsetY += hy
	return p.Body.CursorPos(l)
}

func (p *base[B]) HandleKey(e widget.KeyEvent) bool {
	return p.Body.HandleKey(e)
}
