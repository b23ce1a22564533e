// Package style controls how a fragment of prompt text looks: its
// foreground/background color and a bitset of text attributes.
package style

import (
	"fmt"
	"io"
)

// Color identifies a terminal color. Zero value is Reset (no color set).
type Color struct {
	kind colorKind
	r, g, b byte
	ansi    byte
}

type colorKind uint8

const (
	colorReset colorKind = iota
	colorNamed
	colorRGB
	colorAnsi256
)

// Named colors, the 16-color ANSI palette plus Reset.
var (
	Reset        = Color{kind: colorReset}
	Black        = namedColor(0)
	Red          = namedColor(1)
	Green        = namedColor(2)
	Yellow       = namedColor(3)
	Blue         = namedColor(4)
	Magenta      = namedColor(5)
	Cyan         = namedColor(6)
	Grey         = namedColor(7)
	DarkGrey     = namedColor(60)
	LightRed     = namedColor(61)
	LightGreen   = namedColor(62)
	LightYellow  = namedColor(63)
	LightBlue    = namedColor(64)
	LightMagenta = namedColor(65)
	LightCyan    = namedColor(66)
	White        = namedColor(67)
)

func namedColor(code byte) Color { return Color{kind: colorNamed, ansi: code} }

// RGB builds a 24-bit truecolor.
func RGB(r, g, b byte) Color { return Color{kind: colorRGB, r: r, g: g, b: b} }

// Ansi256 builds a color from the 256-color ANSI palette.
func Ansi256(n byte) Color { return Color{kind: colorAnsi256, ansi: n} }

// IsReset reports whether c is the zero/Reset color.
func (c Color) IsReset() bool { return c.kind == colorReset }

// sgrParams returns the full SGR parameter for this color on the given
// ground ('3' foreground, '4' background), e.g. "38;2;r;g;b" or "48;5;n",
// or the plain code for named colors.
func (c Color) sgrParams(ground byte) []byte {
	switch c.kind {
	case colorRGB:
		return []byte(fmt.Sprintf("%c8;2;%d;%d;%d", ground, c.r, c.g, c.b))
	case colorAnsi256:
		return []byte(fmt.Sprintf("%c8;5;%d", ground, c.ansi))
	case colorNamed:
		// 30-37 fg / 40-47 bg for the base 8, 90-97 / 100-107 for bright.
		code := c.ansi
		if code < 60 {
			base := 30
			if ground == '4' {
				base = 40
			}
			return []byte(fmt.Sprintf("%d", base+int(code)))
		}
		base := 90
		if ground == '4' {
			base = 100
		}
		return []byte(fmt.Sprintf("%d", base+int(code)-60))
	default:
		if ground == '3' {
			return []byte("39")
		}
		return []byte("49")
	}
}

// FgSGR returns the SGR parameter for setting this color as foreground.
func (c Color) FgSGR() string { return string(c.sgrParams('3')) }

// BgSGR returns the SGR parameter for setting this color as background.
func (c Color) BgSGR() string { return string(c.sgrParams('4')) }

// Attributes is a bitset of text attributes, e.g. bold or underlined.
type Attributes uint16

const (
	Bold Attributes = 1 << iota
	Dim
	Italic
	Underlined
	SlowBlink
	RapidBlink
	Reversed
	Hidden
	CrossedOut
)

// Has reports whether all bits in other are set in a.
func (a Attributes) Has(other Attributes) bool { return a&other == other }

// AttributeDiff is the change needed to transition from one Attributes set
// to another, as returned by Attributes.Diff.
type AttributeDiff struct {
	ToAdd    Attributes
	ToRemove Attributes
}

// Diff computes the minimal set of attributes to add/remove to transition
// from a to target.
func (a Attributes) Diff(target Attributes) AttributeDiff {
	changed := a ^ target
	return AttributeDiff{
		ToAdd:    changed & target,
		ToRemove: changed & a,
	}
}

// sgrSetCodes/sgrUnsetCodes are the SGR codes to turn each attribute bit on
// or off individually, in the same order as the const block above.
var sgrSetCodes = [...]string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
var sgrUnsetCodes = [...]string{"22", "22", "23", "24", "25", "25", "27", "28", "29"}

// SGRSetCodes returns the SGR codes that must be emitted to turn on every
// bit set in a.
func (a Attributes) SGRSetCodes() []string {
	var codes []string
	for i, code := range sgrSetCodes {
		if a&(1<<uint(i)) != 0 {
			codes = append(codes, code)
		}
	}
	return codes
}

// SGRUnsetCodes returns the SGR codes that must be emitted to turn off
// every bit set in a.
func (a Attributes) SGRUnsetCodes() []string {
	var codes []string
	for i, code := range sgrUnsetCodes {
		if a&(1<<uint(i)) != 0 {
			codes = append(codes, code)
		}
	}
	return codes
}

// Printable is anything that can render its textual content to a writer.
// Styled uses this instead of fmt.Stringer so callers aren't forced to
// allocate an intermediate string for large or computed content.
type Printable interface {
	WriteTo(w io.Writer) error
}

type stringContent string

func (s stringContent) WriteTo(w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

// Str wraps a plain string as Printable.
func Str(s string) Printable { return stringContent(s) }

// Styled is a piece of content plus the color/attributes it should be
// rendered with. The zero value has no color or attributes set and
// renders its content unmodified.
type Styled struct {
	Content    Printable
	Fg, Bg     Color
	Attributes Attributes
	hasFg      bool
	hasBg      bool
}

// New wraps content with no styling applied.
func New(content Printable) Styled {
	return Styled{Content: content}
}

// NewString wraps a plain string with no styling applied.
func NewString(s string) Styled {
	return New(Str(s))
}

// WithFg returns a copy styled with the given foreground color.
func (s Styled) WithFg(c Color) Styled {
	s.Fg = c
	s.hasFg = true
	return s
}

// WithBg returns a copy styled with the given background color.
func (s Styled) WithBg(c Color) Styled {
	s.Bg = c
	s.hasBg = true
	return s
}

// WithAttributes returns a copy with the given attributes OR'd in.
func (s Styled) WithAttributes(a Attributes) Styled {
	s.Attributes |= a
	return s
}

// Convenience fluent builders matching the common foreground colors and
// attributes, mirroring Stylize in the original implementation.
func (s Styled) Black() Styled        { return s.WithFg(Black) }
func (s Styled) Red() Styled          { return s.WithFg(Red) }
func (s Styled) Green() Styled        { return s.WithFg(Green) }
func (s Styled) Yellow() Styled       { return s.WithFg(Yellow) }
func (s Styled) Blue() Styled         { return s.WithFg(Blue) }
func (s Styled) Magenta() Styled      { return s.WithFg(Magenta) }
func (s Styled) Cyan() Styled         { return s.WithFg(Cyan) }
func (s Styled) Grey() Styled         { return s.WithFg(Grey) }
func (s Styled) DarkGrey() Styled     { return s.WithFg(DarkGrey) }
func (s Styled) White() Styled        { return s.WithFg(White) }
func (s Styled) LightRed() Styled     { return s.WithFg(LightRed) }
func (s Styled) LightGreen() Styled   { return s.WithFg(LightGreen) }

func (s Styled) OnRed() Styled   { return s.WithBg(Red) }
func (s Styled) OnGreen() Styled { return s.WithBg(Green) }
func (s Styled) OnBlue() Styled  { return s.WithBg(Blue) }

func (s Styled) Bold() Styled       { return s.WithAttributes(Bold) }
func (s Styled) Dim() Styled        { return s.WithAttributes(Dim) }
func (s Styled) Italic() Styled     { return s.WithAttributes(Italic) }
func (s Styled) Underlined() Styled { return s.WithAttributes(Underlined) }
func (s Styled) Reverse() Styled    { return s.WithAttributes(Reversed) }

// Writer is the minimal surface Write needs from a backend: set/reset fg,
// bg and attributes, and a plain io.Writer for content.
type Writer interface {
	io.Writer
	SetFg(Color) error
	SetBg(Color) error
	SetAttributes(Attributes) error
}

// Write sets the style, writes the content, then resets exactly what it
// set — never a global reset, so surrounding style is undisturbed.
func (s Styled) Write(w Writer) error {
	if s.hasFg {
		if err := w.SetFg(s.Fg); err != nil {
			return err
		}
	}
	if s.hasBg {
		if err := w.SetBg(s.Bg); err != nil {
			return err
		}
	}
	if s.Attributes != 0 {
		if err := w.SetAttributes(s.Attributes); err != nil {
			return err
		}
	}

	if s.Content != nil {
		if err := s.Content.WriteTo(w); err != nil {
			return err
		}
	}

	if s.hasFg {
		if err := w.SetFg(Reset); err != nil {
			return err
		}
	}
	if s.hasBg {
		if err := w.SetBg(Reset); err != nil {
			return err
		}
	}
	if s.Attributes != 0 {
		if err := w.SetAttributes(0); err != nil {
			return err
		}
	}
	return nil
}
