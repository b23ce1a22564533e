// Package widget defines the rendering cycle every composable UI fragment
// obeys, and the key-event types it is driven by.
package widget

import (
	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/layout"
)

// Widget is the phased contract every drawable fragment honours.
type Widget interface {
	// Height returns the rows this widget will consume given the current
	// layout, and mutates *l to describe the post-draw cursor position.
	Height(l *layout.Layout) uint16
	// Render writes bytes. On entry the cursor is at
	// (l.OffsetX+l.LineOffset, l.OffsetY); Render may assume Height was
	// already called for an equivalent layout.
	Render(l *layout.Layout, b backend.Backend) error
	// CursorPos returns where the visible caret should end up, given the
	// layout Height produced.
	CursorPos(l layout.Layout) (x, y uint16)
	// HandleKey processes a key event, returning true if state changed
	// and a re-render is needed.
	HandleKey(e KeyEvent) bool
}

// KeyCode identifies a single key, independent of modifiers.
type KeyCode int

const (
	KeyBackspace KeyCode = iota
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyF
	KeyChar
	KeyNull
	KeyEsc
	// KeyCursorPositionReport is a stray CPR reply (ESC '[' row ';' col 'R')
	// that reached the normal event stream instead of being consumed by
	// the backend that issued the DSR query. No widget acts on it.
	KeyCursorPositionReport
)

// KeyModifiers is a bitset of held modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModControl
	ModAlt
)

// Has reports whether all bits in other are set.
func (m KeyModifiers) Has(other KeyModifiers) bool { return m&other == other }

// KeyEvent is a single parsed keystroke.
type KeyEvent struct {
	Code      KeyCode
	Char      rune // valid when Code == KeyChar
	Func      int  // valid when Code == KeyF: F(1..=12)
	Modifiers KeyModifiers
}

// Ctrl builds the KeyEvent for Ctrl+c, a common case widgets check for by
// hand (Ctrl-A/Ctrl-E/Ctrl-W/Ctrl-U/Ctrl-K).
func Ctrl(c rune) KeyEvent {
	return KeyEvent{Code: KeyChar, Char: c, Modifiers: ModControl}
}

// Alt builds the KeyEvent for Alt+c.
func Alt(c rune) KeyEvent {
	return KeyEvent{Code: KeyChar, Char: c, Modifiers: ModAlt}
}

// Char builds the KeyEvent for a plain character with no modifiers.
func Char(c rune) KeyEvent {
	return KeyEvent{Code: KeyChar, Char: c}
}

// Movement is the semantic navigation action a key maps to in a
// scrollable/selectable list.
type Movement int

const (
	MoveUp Movement = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveHome
	MoveEnd
	MovePageUp
	MovePageDown
	MovePrevWord
	MoveNextWord
)

// MovementFromKey maps a KeyEvent to a Movement: arrow keys, vi-style
// h/j/k/l/g/G, Ctrl-A/Ctrl-E for Home/End, Ctrl-B/Ctrl-F for Left/Right,
// and Ctrl/Alt+Left/Right or Alt-b/Alt-f for word motion. Callers needing
// h/j/k/l/g/G for something else must check for that first.
func MovementFromKey(e KeyEvent) (Movement, bool) {
	wordMods := ModControl | ModAlt
	switch e.Code {
	case KeyLeft:
		if e.Modifiers&wordMods != 0 {
			return MovePrevWord, true
		}
		return MoveLeft, true
	case KeyRight:
		if e.Modifiers&wordMods != 0 {
			return MoveNextWord, true
		}
		return MoveRight, true
	case KeyUp:
		return MoveUp, true
	case KeyDown:
		return MoveDown, true
	case KeyHome:
		return MoveHome, true
	case KeyEnd:
		return MoveEnd, true
	case KeyPageUp:
		return MovePageUp, true
	case KeyPageDown:
		return MovePageDown, true
	case KeyChar:
		switch {
		case e.Char == 'b' && e.Modifiers.Has(ModAlt):
			return MovePrevWord, true
		case e.Char == 'f' && e.Modifiers.Has(ModAlt):
			return MoveNextWord, true
		case e.Char == 'k' && e.Modifiers == 0:
			return MoveUp, true
		case e.Char == 'j' && e.Modifiers == 0:
			return MoveDown, true
		case e.Char == 'h' && e.Modifiers == 0:
			return MoveLeft, true
		case e.Char == 'b' && e.Modifiers.Has(ModControl):
			return MoveLeft, true
		case e.Char == 'l' && e.Modifiers == 0:
			return MoveRight, true
		case e.Char == 'f' && e.Modifiers.Has(ModControl):
			return MoveRight, true
		case e.Char == 'g' && e.Modifiers == 0:
			return MoveHome, true
		case e.Char == 'G' && e.Modifiers == 0:
			return MoveEnd, true
		case e.Char == 'a' && e.Modifiers.Has(ModControl):
			return MoveHome, true
		case e.Char == 'e' && e.Modifiers.Has(ModControl):
			return MoveEnd, true
		}
	}
	return 0, false
}
