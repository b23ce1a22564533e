// Package layout describes where a widget may draw on the screen and how
// much room it has, without giving it access to a backend.
package layout

import "math"

// MaxHeight is the saturating sentinel for Layout.MaxHeight: "no limit".
const MaxHeight uint16 = math.MaxUint16

// Size is a terminal dimension pair in cells.
type Size struct {
	Width, Height uint16
}

// RenderRegion picks which slice of an over-tall widget is shown when it
// must be clipped to MaxHeight.
type RenderRegion int

const (
	Top RenderRegion = iota
	Middle
	Bottom
)

// Layout is the single piece of state passed down the widget tree. It is a
// small value type, copied freely; widgets never hold a pointer to a
// Layout beyond the call that gave it to them (except to mutate the
// caller's copy by pointer during Height/Render).
type Layout struct {
	OffsetX, OffsetY uint16
	LineOffset       uint16
	Width, Height    uint16
	MaxHeight        uint16
	RenderRegion     RenderRegion
}

// New builds a Layout with the given initial line offset and terminal
// size, no max height limit, and the default (Top) render region.
func New(lineOffset uint16, size Size) Layout {
	return Layout{
		LineOffset: lineOffset,
		Width:      size.Width,
		Height:     size.Height,
		MaxHeight:  MaxHeight,
	}
}

// LineWidth is the number of cells left on the current line.
func (l Layout) LineWidth() uint16 {
	return l.Width - l.OffsetX - l.LineOffset
}

// AvailableWidth is the full width available to this widget's region.
func (l Layout) AvailableWidth() uint16 {
	return l.Width - l.OffsetX
}

// WithLineOffset returns a copy with LineOffset set.
func (l Layout) WithLineOffset(n uint16) Layout {
	l.LineOffset = n
	return l
}

// WithOffset returns a copy with OffsetX/OffsetY set.
func (l Layout) WithOffset(x, y uint16) Layout {
	l.OffsetX = x
	l.OffsetY = y
	return l
}

// WithMaxHeight returns a copy with MaxHeight set.
func (l Layout) WithMaxHeight(n uint16) Layout {
	l.MaxHeight = n
	return l
}

// WithRenderRegion returns a copy with RenderRegion set.
func (l Layout) WithRenderRegion(r RenderRegion) Layout {
	l.RenderRegion = r
	return l
}

// WithCursorPos returns a copy whose OffsetX/OffsetY/LineOffset place the
// cursor at the given absolute position, assuming the cursor sits right
// after OffsetX+LineOffset on row OffsetY.
func (l Layout) WithCursorPos(x, y uint16) Layout {
	l.OffsetY = y
	l.LineOffset = x - l.OffsetX
	return l
}

// OffsetCursor returns a copy with the cursor moved by (dx, dy): dy rows
// down and dx cells further along the current line.
func (l Layout) OffsetCursor(dx, dy uint16) Layout {
	l.OffsetY += dy
	l.LineOffset += dx
	return l
}

// GetStart returns the first index to show out of a cached block of
// `total` lines when clipped to l.MaxHeight, according to l.RenderRegion.
func (l Layout) GetStart(total uint16) uint16 {
	if total <= l.MaxHeight {
		return 0
	}
	overflow := total - l.MaxHeight
	switch l.RenderRegion {
	case Bottom:
		return overflow
	case Middle:
		return overflow / 2
	default: // Top
		return 0
	}
}
