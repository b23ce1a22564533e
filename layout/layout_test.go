package layout

import "testing"

func TestLineWidthAndAvailableWidth(t *testing.T) {
	l := New(3, Size{Width: 80, Height: 24}).WithOffset(5, 0)
	if got, want := l.AvailableWidth(), uint16(75); got != want {
		t.Errorf("AvailableWidth() = %d, want %d", got, want)
	}
	if got, want := l.LineWidth(), uint16(72); got != want {
		t.Errorf("LineWidth() = %d, want %d", got, want)
	}
}

func TestWithLineOffsetAndOffset(t *testing.T) {
	l := New(0, Size{Width: 10, Height: 10})
	l = l.WithLineOffset(4)
	if l.LineOffset != 4 {
		t.Fatalf("LineOffset = %d, want 4", l.LineOffset)
	}
	l = l.WithOffset(2, 3)
	if l.OffsetX != 2 || l.OffsetY != 3 {
		t.Fatalf("Offset = (%d, %d), want (2, 3)", l.OffsetX, l.OffsetY)
	}
}

func TestOffsetCursorAccumulates(t *testing.T) {
	l := New(1, Size{Width: 10, Height: 10}).WithOffset(0, 2)
	l = l.OffsetCursor(3, 1)
	l = l.OffsetCursor(2, 1)
	if l.OffsetY != 4 {
		t.Errorf("OffsetY = %d, want 4 (2 initial + 1 + 1)", l.OffsetY)
	}
	if l.LineOffset != 6 {
		t.Errorf("LineOffset = %d, want 6 (1 initial + 3 + 2)", l.LineOffset)
	}
}

func TestWithCursorPosReplacesAbsolute(t *testing.T) {
	l := New(1, Size{Width: 10, Height: 10}).WithOffset(2, 7)
	l = l.WithCursorPos(8, 3)
	if l.OffsetY != 3 {
		t.Errorf("OffsetY = %d, want 3 (replaced, not accumulated)", l.OffsetY)
	}
	if l.LineOffset != 6 {
		t.Errorf("LineOffset = %d, want 6 (8 - OffsetX 2)", l.LineOffset)
	}
}

func TestGetStart(t *testing.T) {
	tests := []struct {
		name   string
		region RenderRegion
		total  uint16
		max    uint16
		want   uint16
	}{
		{"fits", Top, 5, 10, 0},
		{"top-overflow", Top, 10, 4, 0},
		{"bottom-overflow", Bottom, 10, 4, 6},
		{"middle-overflow", Middle, 10, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(0, Size{Width: 80, Height: 24}).WithMaxHeight(tt.max).WithRenderRegion(tt.region)
			if got := l.GetStart(tt.total); got != tt.want {
				t.Errorf("GetStart(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	l := New(2, Size{Width: 40, Height: 20})
	if l.LineOffset != 2 {
		t.Errorf("LineOffset = %d, want 2", l.LineOffset)
	}
	if l.Width != 40 || l.Height != 20 {
		t.Errorf("Size = %dx%d, want 40x20", l.Width, l.Height)
	}
	if l.MaxHeight != MaxHeight {
		t.Errorf("MaxHeight = %d, want the no-limit sentinel", l.MaxHeight)
	}
	if l.RenderRegion != Top {
		t.Errorf("RenderRegion = %v, want Top", l.RenderRegion)
	}
}
