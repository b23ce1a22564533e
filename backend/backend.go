// Package backend is the capability interface every widget renders
// through: a byte sink plus terminal primitives for cursor motion,
// clearing, scrolling, color, attributes and raw mode. Two concrete
// terminal implementations are provided (Direct and Queued, see direct.go
// and queued.go) plus an in-memory TestBackend (see testbackend.go).
package backend

import (
	"io"

	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/style"
)

// ClearType selects what region a Clear call erases.
type ClearType int

const (
	ClearAll ClearType = iota
	ClearFromCursorDown
	ClearFromCursorUp
	ClearCurrentLine
	ClearUntilNewLine
)

// MoveDirection is a relative cursor motion.
type MoveDirection struct {
	kind moveKind
	n    uint16
}

type moveKind int

const (
	moveUp moveKind = iota
	moveDown
	moveLeft
	moveRight
	moveNextLine
	movePrevLine
	moveColumn
)

func Up(n uint16) MoveDirection       { return MoveDirection{moveUp, n} }
func Down(n uint16) MoveDirection     { return MoveDirection{moveDown, n} }
func Left(n uint16) MoveDirection     { return MoveDirection{moveLeft, n} }
func Right(n uint16) MoveDirection    { return MoveDirection{moveRight, n} }
func NextLine(n uint16) MoveDirection { return MoveDirection{moveNextLine, n} }
func PrevLine(n uint16) MoveDirection { return MoveDirection{movePrevLine, n} }
func Column(n uint16) MoveDirection   { return MoveDirection{moveColumn, n} }

// Backend is the capability interface consumed by every widget. Widgets
// must never write control bytes directly through Write — styling and
// motion go through the dedicated methods.
type Backend interface {
	io.Writer

	EnableRawMode() error
	DisableRawMode() error

	HideCursor() error
	ShowCursor() error
	GetCursorPos() (x, y uint16, err error)
	MoveCursorTo(x, y uint16) error
	MoveCursor(dir MoveDirection) error

	Scroll(delta int) error

	SetAttributes(style.Attributes) error
	RemoveAttributes(style.Attributes) error
	SetFg(style.Color) error
	SetBg(style.Color) error
	WriteStyled(style.Styled) error

	Clear(ClearType) error

	Size() (layout.Size, error)
}

// defaultMoveCursor implements MoveCursor by querying the current
// position and issuing an absolute MoveCursorTo, the fallback any backend
// may use for directions it does not special-case. NextLine(1) is the hot
// path during rendering (end of every widget's line) and both concrete
// backends override it with a direct "\n\r" write instead of going through
// this general path.
func defaultMoveCursor(b Backend, dir MoveDirection) error {
	x, y, err := b.GetCursorPos()
	if err != nil {
		return err
	}
	switch dir.kind {
	case moveUp:
		if dir.n > y {
			y = 0
		} else {
			y -= dir.n
		}
	case moveDown:
		y += dir.n
	case moveLeft:
		if dir.n > x {
			x = 0
		} else {
			x -= dir.n
		}
	case moveRight:
		x += dir.n
	case moveNextLine:
		y += dir.n
		x = 0
	case movePrevLine:
		if dir.n > y {
			y = 0
		} else {
			y -= dir.n
		}
		x = 0
	case moveColumn:
		x = dir.n
	}
	return b.MoveCursorTo(x, y)
}
