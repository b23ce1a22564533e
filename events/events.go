// Package events turns a stream of raw terminal input bytes into
// widget.KeyEvent values.
//
// No library in the surrounding ecosystem exposes a standalone ANSI
// input-key parser (terminal UI toolkits bundle one internally); this
// parser is hand-written, grounded on the escape-sequence tables used by
// the reference implementation's own terminal event readers, generalised
// into a full key-decoding state machine.
package events

import (
	"bufio"
	"context"
	"io"
	"unicode/utf8"

	"github.com/majorcontext/prompt/widget"
)

// Source yields the next key event, blocking until one is available.
type Source interface {
	Next(ctx context.Context) (widget.KeyEvent, error)
}

// Reader decodes key events from an io.Reader of raw terminal bytes (a TTY
// put in raw mode by the caller). It is not safe for concurrent use.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r, buffering as needed to look ahead for multi-byte
// escape sequences.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next reads and decodes the next key event. ctx is honored only at the
// granularity of the underlying Read: once a Read has returned bytes,
// decoding to completion is synchronous (it does not block further).
func (d *Reader) Next(ctx context.Context) (widget.KeyEvent, error) {
	if err := ctx.Err(); err != nil {
		return widget.KeyEvent{}, err
	}

	b, err := d.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return widget.KeyEvent{Code: widget.KeyNull}, nil
		}
		return widget.KeyEvent{}, err
	}

	switch b {
	case 0x00:
		return widget.KeyEvent{Code: widget.KeyNull}, nil
	case 0x1b:
		return d.decodeEscape()
	case '\r', '\n':
		return widget.KeyEvent{Code: widget.KeyEnter}, nil
	case '\t':
		return widget.KeyEvent{Code: widget.KeyTab}, nil
	case 0x7f, 0x08:
		return widget.KeyEvent{Code: widget.KeyBackspace}, nil
	}

	if b < 0x20 {
		// A control byte not otherwise special-cased is Ctrl-<letter>,
		// control bytes run 0x01..0x1a for Ctrl-a..Ctrl-z.
		return widget.Ctrl(rune('a' + int(b) - 1)), nil
	}

	return d.decodeRune(b)
}

// decodeEscape handles the byte(s) following a lone ESC: either a bare Esc
// keypress (nothing follows before the next Read would block), an
// Alt+<char> sequence (ESC followed directly by a printable byte that
// isn't '[' or 'O'), or a CSI/SS3 sequence (ESC '[' ... / ESC 'O' ...).
func (d *Reader) decodeEscape() (widget.KeyEvent, error) {
	if d.r.Buffered() == 0 {
		// Nothing followed within the buffered input: a bare Esc.
		return widget.KeyEvent{Code: widget.KeyEsc}, nil
	}
	next, err := d.r.Peek(1)
	if err != nil {
		return widget.KeyEvent{Code: widget.KeyEsc}, nil
	}

	switch next[0] {
	case '[':
		d.r.ReadByte()
		return d.decodeCSI()
	case 'O':
		d.r.ReadByte()
		return d.decodeSS3()
	default:
		b, _ := d.r.ReadByte()
		if b < 0x20 {
			return widget.Alt(rune('a' + int(b) - 1)), nil
		}
		k, err := d.decodeRune(b)
		if err != nil {
			return k, err
		}
		k.Modifiers |= widget.ModAlt
		return k, nil
	}
}

// decodeCSI decodes the body of an ESC '[' ... sequence: an optional
// numeric parameter, then a single final byte selecting the key.
func (d *Reader) decodeCSI() (widget.KeyEvent, error) {
	param := 0
	haveParam := false
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return widget.KeyEvent{}, err
		}
		if b >= '0' && b <= '9' {
			haveParam = true
			param = param*10 + int(b-'0')
			continue
		}
		switch b {
		case 'A':
			return widget.KeyEvent{Code: widget.KeyUp}, nil
		case 'B':
			return widget.KeyEvent{Code: widget.KeyDown}, nil
		case 'C':
			return widget.KeyEvent{Code: widget.KeyRight}, nil
		case 'D':
			return widget.KeyEvent{Code: widget.KeyLeft}, nil
		case 'H':
			return widget.KeyEvent{Code: widget.KeyHome}, nil
		case 'F':
			return widget.KeyEvent{Code: widget.KeyEnd}, nil
		case 'Z':
			return widget.KeyEvent{Code: widget.KeyBackTab}, nil
		case 'R':
			// A bare cursor position report with no row;col payload
			// shouldn't occur, but don't let it fall into the
			// unrecognized-final-byte case below and surface as Esc.
			return widget.KeyEvent{Code: widget.KeyCursorPositionReport}, nil
		case '~':
			return csiTildeKey(param, haveParam), nil
		case ';':
			// Modifier parameter follows (e.g. "1;5C" = Ctrl-Right), or
			// this is a cursor position report (e.g. "12;5R") — its row
			// was already accumulated into param, read the column the
			// same way a modifier parameter would be read and check the
			// final byte before treating it as one.
			mod, finalByte, err := d.readModifiedFinal()
			if err != nil {
				return widget.KeyEvent{}, err
			}
			if finalByte == 'R' {
				return widget.KeyEvent{Code: widget.KeyCursorPositionReport}, nil
			}
			k := csiFinalKey(finalByte, param)
			k.Modifiers |= mod
			return k, nil
		default:
			// Unrecognized final byte: surface as a literal Esc so the
			// driver isn't stuck; the sequence is dropped.
			return widget.KeyEvent{Code: widget.KeyEsc}, nil
		}
	}
}

func (d *Reader) readModifiedFinal() (widget.KeyModifiers, byte, error) {
	modParam := 0
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		if b >= '0' && b <= '9' {
			modParam = modParam*10 + int(b-'0')
			continue
		}
		return csiModifier(modParam), b, nil
	}
}

// csiModifier decodes xterm's modifyOtherKeys parameter: 1=none,
// 2=Shift, 3=Alt, 4=Shift+Alt, 5=Ctrl, ...
func csiModifier(param int) widget.KeyModifiers {
	if param <= 0 {
		return 0
	}
	bits := param - 1
	var m widget.KeyModifiers
	if bits&1 != 0 {
		m |= widget.ModShift
	}
	if bits&2 != 0 {
		m |= widget.ModAlt
	}
	if bits&4 != 0 {
		m |= widget.ModControl
	}
	return m
}

func csiFinalKey(final byte, param int) widget.KeyEvent {
	switch final {
	case 'A':
		return widget.KeyEvent{Code: widget.KeyUp}
	case 'B':
		return widget.KeyEvent{Code: widget.KeyDown}
	case 'C':
		return widget.KeyEvent{Code: widget.KeyRight}
	case 'D':
		return widget.KeyEvent{Code: widget.KeyLeft}
	case 'H':
		return widget.KeyEvent{Code: widget.KeyHome}
	case 'F':
		return widget.KeyEvent{Code: widget.KeyEnd}
	case '~':
		return csiTildeKey(param, true)
	default:
		return widget.KeyEvent{Code: widget.KeyEsc}
	}
}

// csiTildeKey maps the numeric parameter of an ESC '[' n '~' sequence.
func csiTildeKey(param int, haveParam bool) widget.KeyEvent {
	if !haveParam {
		return widget.KeyEvent{Code: widget.KeyEsc}
	}
	switch param {
	case 1, 7:
		return widget.KeyEvent{Code: widget.KeyHome}
	case 2:
		return widget.KeyEvent{Code: widget.KeyInsert}
	case 3:
		return widget.KeyEvent{Code: widget.KeyDelete}
	case 4, 8:
		return widget.KeyEvent{Code: widget.KeyEnd}
	case 5:
		return widget.KeyEvent{Code: widget.KeyPageUp}
	case 6:
		return widget.KeyEvent{Code: widget.KeyPageDown}
	case 11, 12, 13, 14, 15:
		return widget.KeyEvent{Code: widget.KeyF, Func: param - 10}
	case 17, 18, 19, 20, 21:
		return widget.KeyEvent{Code: widget.KeyF, Func: param - 11}
	case 23, 24:
		return widget.KeyEvent{Code: widget.KeyF, Func: param - 12}
	default:
		return widget.KeyEvent{Code: widget.KeyEsc}
	}
}

// decodeSS3 decodes ESC 'O' <final>, used by some terminals for F1-F4 and
// arrow keys in application-cursor-keys mode.
func (d *Reader) decodeSS3() (widget.KeyEvent, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return widget.KeyEvent{}, err
	}
	switch b {
	case 'A':
		return widget.KeyEvent{Code: widget.KeyUp}, nil
	case 'B':
		return widget.KeyEvent{Code: widget.KeyDown}, nil
	case 'C':
		return widget.KeyEvent{Code: widget.KeyRight}, nil
	case 'D':
		return widget.KeyEvent{Code: widget.KeyLeft}, nil
	case 'H':
		return widget.KeyEvent{Code: widget.KeyHome}, nil
	case 'F':
		return widget.KeyEvent{Code: widget.KeyEnd}, nil
	case 'P', 'Q', 'R', 'S':
		return widget.KeyEvent{Code: widget.KeyF, Func: int(b-'P') + 1}, nil
	default:
		return widget.KeyEvent{Code: widget.KeyEsc}, nil
	}
}

// decodeRune decodes a (possibly multi-byte UTF-8) character starting with
// the already-read lead byte b.
func (d *Reader) decodeRune(b byte) (widget.KeyEvent, error) {
	n := utf8.RuneLen(rune(b))
	if n <= 1 && b < utf8.RuneSelf {
		return widget.Char(rune(b)), nil
	}
	size := 1
	switch {
	case b&0xe0 == 0xc0:
		size = 2
	case b&0xf0 == 0xe0:
		size = 3
	case b&0xf8 == 0xf0:
		size = 4
	}
	buf := make([]byte, size)
	buf[0] = b
	for i := 1; i < size; i++ {
		cb, err := d.r.ReadByte()
		if err != nil {
			return widget.KeyEvent{}, err
		}
		buf[i] = cb
	}
	r, _ := utf8.DecodeRune(buf)
	return widget.Char(r), nil
}
