// Package selectlist is the paginated scrollable list engine: it
// maintains a visible window over a list whose items may have different
// heights, keeps a "continuity element" on the side the cursor moved in
// from, and supports both looping and clamped navigation.
package selectlist

import (
	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/style"
	"github.com/majorcontext/prompt/widget"
)

// List is the renderable backing store a Select paginates over.
type List interface {
	// RenderItem draws the element at index. At most layout.MaxHeight lines
	// may be used; layout.RenderRegion indicates which part of an
	// over-tall element to show. Where the cursor ends up does not matter.
	RenderItem(index int, hovered bool, l layout.Layout, b backend.Backend) error
	// IsSelectable reports whether index can be navigated to; unselectable
	// items are skipped during Up/Down/Home/End/PageUp/PageDown.
	IsSelectable(index int) bool
	// PageSize is the maximum number of rows the list may occupy before it
	// becomes scrollable. Must be at least 5.
	PageSize() int
	// ShouldLoop reports whether navigation wraps past either end. It is
	// consulted whether or not the list is paginating.
	ShouldLoop() bool
	// HeightAt is the number of rows the element at index will render as.
	HeightAt(index int, l layout.Layout) uint16
	// Len is the number of elements in the list.
	Len() int
}

type heightCache struct {
	heights    []uint16
	prevLayout layout.Layout
}

// Select is a widget that lets the user pick a single item from a List.
type Select[L List] struct {
	List L

	firstSelectable int
	lastSelectable  int
	at              int

	pageStart       int
	pageEnd         int
	pageStartHeight uint16
	pageEndHeight   uint16

	height  uint16
	heights *heightCache
}

// New creates a Select over list.
//
// Panics if the list has no selectable items, or if list.PageSize() < 5.
func New[L List](list L) *Select[L] {
	first := -1
	for i := 0; i < list.Len(); i++ {
		if list.IsSelectable(i) {
			first = i
			break
		}
	}
	if first < 0 {
		panic("selectlist: list has no selectable items")
	}

	last := -1
	for i := list.Len() - 1; i >= 0; i-- {
		if list.IsSelectable(i) {
			last = i
			break
		}
	}

	if list.PageSize() < 5 {
		panic("selectlist: page size must be at least 5")
	}

	return &Select[L]{
		List:            list,
		firstSelectable: first,
		lastSelectable:  last,
		at:              first,
		pageStart:       0,
		pageEnd:         -1,
		height:          layout.MaxHeight,
		pageStartHeight: layout.MaxHeight,
		pageEndHeight:   layout.MaxHeight,
	}
}

// At returns the index currently hovered.
func (s *Select[L]) At() int { return s.at }

// SetAt moves the hover to at, which the caller must ensure is
// selectable. at may be out of range, e.g. equal to List.Len().
func (s *Select[L]) SetAt(at int) {
	var dir widget.Movement
	if s.at >= s.List.Len() || s.at < at {
		dir = widget.MoveDown
	} else {
		dir = widget.MoveUp
	}
	s.at = at

	if s.isPaginating() {
		if at >= s.List.Len() {
			s.initPage()
		} else if s.heights != nil {
			s.maybeAdjustPage(dir)
		}
	}
}

func (s *Select[L]) nextSelectable() int {
	n := s.List.Len()
	if s.at >= s.lastSelectable {
		if s.List.ShouldLoop() {
			return s.firstSelectable
		}
		return s.lastSelectable
	}
	at := s.at
	if at >= n {
		at = n - 1
	}
	for {
		at = (at + 1) % n
		if s.List.IsSelectable(at) {
			return at
		}
	}
}

func (s *Select[L]) prevSelectable() int {
	n := s.List.Len()
	if s.at <= s.firstSelectable {
		if s.List.ShouldLoop() {
			return s.lastSelectable
		}
		return s.firstSelectable
	}
	at := s.at
	if at >= n {
		at = n - 1
	}
	for {
		at = (n + at - 1) % n
		if s.List.IsSelectable(at) {
			return at
		}
	}
}

func (s *Select[L]) maybeUpdateHeights(l layout.Layout) {
	if s.heights != nil && s.heights.prevLayout == l {
		return
	}

	if s.heights == nil {
		s.heights = &heightCache{heights: make([]uint16, 0, s.List.Len())}
	} else {
		s.heights.heights = s.heights.heights[:0]
	}
	s.heights.prevLayout = l

	l.LineOffset = 0
	s.height = 0
	for i := 0; i < s.List.Len(); i++ {
		h := s.List.HeightAt(i, l)
		s.height += h
		s.heights.heights = append(s.heights.heights, h)
	}
}

func (s *Select[L]) pageSize() uint16 { return uint16(s.List.PageSize()) }

func (s *Select[L]) isPaginating() bool { return s.height > s.pageSize() }

// atOutsidePage reports whether at has reached either edge of the
// current page, meaning the window needs to move even though at is
// technically still visible.
func (s *Select[L]) atOutsidePage() bool {
	if s.pageStart < s.pageEnd {
		return s.at <= s.pageStart || s.at >= s.pageEnd
	}
	return s.at <= s.pageStart && s.at >= s.pageEnd
}

// tryGetIndex returns the index delta away from at, honoring looping.
// delta must be within ±List.Len().
func (s *Select[L]) tryGetIndex(delta int) (int, bool) {
	n := s.List.Len()
	if delta > 0 {
		res := s.at + delta
		if res < n {
			return res, true
		}
		if s.List.ShouldLoop() {
			return res - n, true
		}
		return 0, false
	}

	d := -delta
	if s.List.ShouldLoop() {
		return (s.at + n - d) % n, true
	}
	if s.at < d {
		return 0, false
	}
	return s.at - d, true
}

type pageBound struct {
	idx    int
	height uint16
}

// adjustPage recomputes page_start/page_end after a move, keeping one
// "continuity element" visible on the side moved away from.
func (s *Select[L]) adjustPage(movedTo widget.Movement) {
	var direction int
	switch movedTo {
	case widget.MoveDown:
		direction = -1
	case widget.MoveUp:
		direction = 1
	default:
		panic("selectlist: adjustPage called with a non Up/Down movement")
	}

	if s.heights == nil {
		panic("selectlist: adjustPage called before Height or Render")
	}
	heights := s.heights.heights

	// -1 since the hint message at the end takes one line.
	maxHeight := s.pageSize() - 1

	type step struct {
		idx      int
		opposite bool
	}
	var seq []step
	if idx, ok := s.tryGetIndex(direction); ok {
		seq = append(seq, step{idx, false})
	}
	if idx, ok := s.tryGetIndex(-direction); ok {
		seq = append(seq, step{idx, true})
	}
	for i := 2; i < int(maxHeight); i++ {
		if idx, ok := s.tryGetIndex(direction * i); ok {
			seq = append(seq, step{idx, false})
		}
	}

	boundA := pageBound{s.at, heights[s.at]}
	boundB := pageBound{s.at, heights[s.at]}
	height := heights[s.at]

	for _, st := range seq {
		if height >= maxHeight {
			break
		}

		var elemHeight uint16
		if st.opposite {
			// The continuity element only ever shows one line so the
			// cursor doesn't jump when its real height differs.
			elemHeight = 1
		} else {
			sum := height + heights[st.idx]
			if sum > maxHeight {
				sum = maxHeight
			}
			elemHeight = sum - height
		}

		if st.opposite {
			boundB = pageBound{st.idx, elemHeight}
		} else {
			boundA = pageBound{st.idx, elemHeight}
		}
		height += elemHeight
	}

	if movedTo == widget.MoveDown {
		s.pageStart, s.pageStartHeight = boundA.idx, boundA.height
		s.pageEnd, s.pageEndHeight = boundB.idx, boundB.height
	} else {
		s.pageStart, s.pageStartHeight = boundB.idx, boundB.height
		s.pageEnd, s.pageEndHeight = boundA.idx, boundA.height
	}
}

func (s *Select[L]) maybeAdjustPage(movedTo widget.Movement) {
	if s.atOutsidePage() {
		s.adjustPage(movedTo)
	}
}

func (s *Select[L]) initPage() {
	if s.heights == nil {
		panic("selectlist: initPage called before Height or Render")
	}
	heights := s.heights.heights

	s.pageStart = 0
	s.pageStartHeight = heights[0]

	if s.isPaginating() {
		height := heights[0]
		maxHeight := s.pageSize() - 1

		for i := 1; i < len(heights); i++ {
			if height >= maxHeight {
				break
			}
			s.pageEnd = i
			sum := height + heights[i]
			if sum > maxHeight {
				sum = maxHeight
			}
			s.pageEndHeight = sum - height
			height += heights[i]
		}
	} else {
		s.pageEnd = s.List.Len() - 1
		s.pageEndHeight = heights[s.pageEnd]
	}
}

func (s *Select[L]) renderIn(indices []int, old *layout.Layout, b backend.Backend) error {
	heights := s.heights.heights

	lay := *old
	for _, i := range indices {
		switch {
		case i == s.pageStart:
			lay.MaxHeight = s.pageStartHeight
			lay.RenderRegion = layout.Bottom
		case i == s.pageEnd:
			lay.MaxHeight = s.pageEndHeight
			lay.RenderRegion = layout.Top
		default:
			lay.MaxHeight = heights[i]
		}

		if err := s.List.RenderItem(i, i == s.at, lay, b); err != nil {
			return err
		}
		lay.OffsetY += lay.MaxHeight

		if err := b.MoveCursorTo(lay.OffsetX, lay.OffsetY); err != nil {
			return err
		}
	}

	old.OffsetY = lay.OffsetY
	return nil
}

// IndexableList is a List whose elements can also be fetched by value,
// letting Selected retrieve the hovered item.
type IndexableList[T any] interface {
	List
	Item(i int) T
}

// Selected returns the currently hovered item.
func Selected[T any, L IndexableList[T]](s *Select[L]) T {
	return s.List.Item(s.at)
}

const pageHint = "(Move up and down to reveal more choices)"

// HandleKey moves the hover per the key's Movement, adjusting the visible
// page when needed.
func (s *Select[L]) HandleKey(key widget.KeyEvent) bool {
	mov, ok := widget.MovementFromKey(key)
	if !ok {
		return false
	}

	var moved widget.Movement

	switch mov {
	case widget.MoveUp:
		if !s.List.ShouldLoop() && s.at <= s.firstSelectable {
			return false
		}
		s.at = s.prevSelectable()
		moved = widget.MoveUp

	case widget.MoveDown:
		if !s.List.ShouldLoop() && s.at >= s.lastSelectable {
			return false
		}
		s.at = s.nextSelectable()
		moved = widget.MoveDown

	case widget.MovePageUp:
		if !s.isPaginating() || (!s.List.ShouldLoop() && s.pageStart == 0) {
			if s.at <= s.firstSelectable {
				return false
			}
			s.at = s.firstSelectable
			moved = widget.MoveUp
		} else {
			if idx, ok := s.tryGetIndex(-1); ok {
				s.at = idx
			}
			s.adjustPage(widget.MoveDown)

			if s.pageStart == 0 && !s.List.ShouldLoop() {
				s.at = s.firstSelectable
				s.initPage()
			} else {
				s.at = s.pageStart
				s.at = s.nextSelectable()
			}
			moved = widget.MoveUp
		}

	case widget.MovePageDown:
		if !s.isPaginating() || (!s.List.ShouldLoop() && s.pageEnd+1 == s.List.Len()) {
			if s.at >= s.lastSelectable {
				return false
			}
			s.at = s.lastSelectable
			moved = widget.MoveDown
		} else {
			if idx, ok := s.tryGetIndex(1); ok {
				s.at = idx
			}
			s.adjustPage(widget.MoveUp)
			s.at = s.pageEnd

			if s.pageEnd+1 == s.List.Len() && !s.List.ShouldLoop() {
				s.adjustPage(widget.MoveDown)
				s.at = s.lastSelectable
			} else {
				s.at = s.prevSelectable()
			}
			moved = widget.MoveDown
		}

	case widget.MoveHome:
		if s.at == s.firstSelectable {
			return false
		}
		s.at = s.firstSelectable
		moved = widget.MoveUp

	case widget.MoveEnd:
		if s.at == s.lastSelectable {
			return false
		}
		s.at = s.lastSelectable
		moved = widget.MoveDown

	default:
		return false
	}

	if s.isPaginating() {
		s.maybeAdjustPage(moved)
	}
	return true
}

// Render draws the visible page, followed by the pagination hint when
// the list doesn't fit in one page.
func (s *Select[L]) Render(l *layout.Layout, b backend.Backend) error {
	s.maybeUpdateHeights(*l)

	if s.pageEnd == -1 {
		s.initPage()
	}

	if l.LineOffset != 0 {
		l.LineOffset = 0
		l.OffsetY++
		if err := b.MoveCursorTo(l.OffsetX, l.OffsetY); err != nil {
			return err
		}
	}

	var indices []int
	if s.pageEnd < s.pageStart {
		for i := s.pageStart; i < s.List.Len(); i++ {
			indices = append(indices, i)
		}
		for i := 0; i <= s.pageEnd; i++ {
			indices = append(indices, i)
		}
	} else {
		for i := s.pageStart; i <= s.pageEnd; i++ {
			indices = append(indices, i)
		}
	}

	if err := s.renderIn(indices, l, b); err != nil {
		return err
	}

	if s.isPaginating() {
		if err := b.WriteStyled(style.New(style.Str(pageHint)).WithFg(style.DarkGrey)); err != nil {
			return err
		}
		l.OffsetY++
		if err := b.MoveCursorTo(l.OffsetX, l.OffsetY); err != nil {
			return err
		}
	}

	return nil
}

// CursorPos returns the list's starting offset; unlike other widgets this
// is not a meaningful caret position (there is nothing to edit), just
// where the page begins.
func (s *Select[L]) CursorPos(l layout.Layout) (x, y uint16) {
	return l.LineOffset, 0
}

// Height returns the rows the visible page will occupy.
func (s *Select[L]) Height(l *layout.Layout) uint16 {
	s.maybeUpdateHeights(*l)

	var extra uint16
	if l.LineOffset != 0 {
		extra = 1
	}

	var atHeight uint16
	if s.heights != nil && s.at >= 0 && s.at < len(s.heights.heights) {
		atHeight = s.heights.heights[s.at]
	}
	if s.isPaginating() {
		atHeight++
	}

	shown := s.height
	if shown > s.pageSize() {
		shown = s.pageSize()
	}
	if shown < atHeight {
		shown = atHeight
	}

	height := extra + shown
	l.LineOffset = 0
	l.OffsetY += height
	return height
}

var _ widget.Widget = (*Select[List])(nil)
