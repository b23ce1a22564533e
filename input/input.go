// Package input is the driver that owns the terminal for the lifetime of
// a single prompt: it puts the terminal in raw mode, runs the
// render/handle-key cycle against a Prompt, and restores the terminal
// before returning.
package input

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/events"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/style"
	"github.com/majorcontext/prompt/widget"
)

// Validation is the outcome of Prompt.Validate.
type Validation int

const (
	// Finish means the prompt is ready to produce its output.
	Finish Validation = iota
	// Continue means the state changed but the prompt should keep running;
	// unlike a validation error, nothing is shown to the user.
	Continue
)

// OnEsc controls what happens when the user presses Esc.
type OnEsc int

const (
	// Ignore passes Esc through to the prompt like any other key. Default.
	Ignore OnEsc = iota
	// Terminate ends Run with ErrAborted.
	Terminate
	// SkipQuestion ends Run with ok=false and no error, clearing the prompt.
	SkipQuestion
)

// ValidationError is a validation failure that knows how to render itself
// below the prompt.
type ValidationError interface {
	widget.Widget
}

// Prompt is the contract for a "root" widget runnable by Input.
type Prompt[Out any] interface {
	widget.Widget
	// Validate is called whenever the user presses Enter. The default
	// behavior for a prompt that never rejects input is to always return
	// (Finish, nil).
	Validate() (Validation, ValidationError)
	// Finish produces the output; called exactly once, after Validate has
	// returned Finish.
	Finish() Out
}

var (
	// ErrInterrupted is returned when the user presses Ctrl-C.
	ErrInterrupted = errors.New("input: interrupted")
	// ErrEOF is returned when the input stream is closed (a null key event).
	ErrEOF = errors.New("input: eof")
	// ErrAborted is returned on Esc when OnEsc is Terminate.
	ErrAborted = errors.New("input: aborted")
)

// ioError wraps a backend/transport failure. It never matches the
// user-abort sentinels above, and it unwraps to the underlying error.
type ioError struct{ err error }

func (e *ioError) Error() string { return fmt.Sprintf("input: %v", e.err) }
func (e *ioError) Unwrap() error { return e.err }

func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	return &ioError{err}
}

var (
	exitMu      sync.Mutex
	exitHandler = func() { os.Exit(130) }
)

// SetExitHandler replaces the process-wide hook invoked when a panic
// escapes Run after the terminal has already been restored. There is no
// corresponding Get; the default calls os.Exit(130), matching a
// Ctrl-C-terminated process's conventional exit code.
func SetExitHandler(h func()) {
	exitMu.Lock()
	defer exitMu.Unlock()
	exitHandler = h
}

func callExitHandler() {
	exitMu.Lock()
	h := exitHandler
	exitMu.Unlock()
	h()
}

// flusher is implemented by backends that buffer writes (backend.Queued);
// Input flushes after every render pass when the backend supports it.
type flusher interface {
	Flush() error
}

// terminalState tracks what raw-mode/cursor-visibility changes Input has
// applied to a backend, so they can be undone exactly once.
type terminalState struct {
	b            backend.Backend
	hideCursor   bool
	cursorHidden bool
	enabled      bool
}

func (t *terminalState) init() error {
	t.enabled = true
	if t.hideCursor && !t.cursorHidden {
		if err := t.b.HideCursor(); err != nil {
			return err
		}
		t.cursorHidden = true
	}
	return t.b.EnableRawMode()
}

func (t *terminalState) reset() error {
	if !t.enabled {
		return nil
	}
	t.enabled = false
	if t.cursorHidden {
		if err := t.b.ShowCursor(); err != nil {
			return err
		}
		t.cursorHidden = false
	}
	return t.b.DisableRawMode()
}

const cutoffCross = "✗"
const errorCross = "✖"

// Input runs a Prompt against a backend and an event source until the
// user finishes, skips, or aborts it.
type Input[Out any] struct {
	prompt Prompt[Out]
	onEsc  OnEsc
	term   terminalState

	baseRow        uint16
	size           layout.Size
	renderOverflow bool
}

// New wraps prompt for running against b. Nothing happens until Run is
// called.
func New[Out any](prompt Prompt[Out], b backend.Backend) *Input[Out] {
	return &Input[Out]{prompt: prompt, term: terminalState{b: b}}
}

// HideCursor hides the cursor for the duration of Run.
func (in *Input[Out]) HideCursor() *Input[Out] {
	in.term.hideCursor = true
	return in
}

// OnEsc sets what Esc does; the default is Ignore.
func (in *Input[Out]) OnEsc(o OnEsc) *Input[Out] {
	in.onEsc = o
	return in
}

func (in *Input[Out]) layout() layout.Layout {
	return layout.New(0, in.size).WithOffset(0, in.baseRow)
}

func (in *Input[Out]) updateSize() error {
	sz, err := in.term.b.Size()
	if err != nil {
		return err
	}
	if sz.Width == 0 || sz.Height == 0 {
		return fmt.Errorf("input: invalid terminal size %dx%d, both dimensions must be nonzero", sz.Width, sz.Height)
	}
	in.size = sz
	return nil
}

func (in *Input[Out]) init() error {
	if err := in.term.init(); err != nil {
		return err
	}
	_, y, err := in.term.b.GetCursorPos()
	if err != nil {
		return err
	}
	in.baseRow = y
	return in.render()
}

// adjustScrollback scrolls the terminal up just enough that a widget of
// the given height fits below baseRow, returning the (possibly reduced)
// base row.
func (in *Input[Out]) adjustScrollback(height uint16) (uint16, error) {
	th := in.size.Height
	baseRow := in.baseRow

	var limit uint16
	if th > height {
		limit = th - height
	}

	if in.baseRow > limit {
		dist := in.baseRow - limit
		baseRow -= dist
		if err := in.term.b.Scroll(-int(dist)); err != nil {
			return 0, err
		}
		if err := in.term.b.MoveCursor(backend.Up(dist)); err != nil {
			return 0, err
		}
	}
	return baseRow, nil
}

func (in *Input[Out]) flush() error {
	if !in.term.hideCursor {
		x, y := in.prompt.CursorPos(in.layout())

		if in.renderOverflow && in.size.Height > 0 && y >= in.size.Height-1 {
			if !in.term.cursorHidden {
				in.term.cursorHidden = true
				if err := in.term.b.HideCursor(); err != nil {
					return err
				}
			}
		} else if in.term.cursorHidden {
			in.term.cursorHidden = false
			if err := in.term.b.ShowCursor(); err != nil {
				return err
			}
		}

		if err := in.term.b.MoveCursorTo(x, y); err != nil {
			return err
		}
	}

	if f, ok := in.term.b.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func (in *Input[Out]) renderCutoffMsg() error {
	if err := in.term.b.SetFg(style.DarkGrey); err != nil {
		return err
	}
	msg := fmt.Sprintf("%s the window height is too small, the prompt has been cut-off %s", cutoffCross, cutoffCross)
	if _, err := in.term.b.Write([]byte(msg)); err != nil {
		return err
	}
	return in.term.b.SetFg(style.Reset)
}

func (in *Input[Out]) clear() error {
	if err := in.term.b.MoveCursorTo(0, in.baseRow); err != nil {
		return err
	}
	return in.term.b.Clear(backend.ClearFromCursorDown)
}

func (in *Input[Out]) gotoLastLine(height uint16) error {
	baseRow, err := in.adjustScrollback(height + 1)
	if err != nil {
		return err
	}
	in.baseRow = baseRow
	return in.term.b.MoveCursorTo(0, in.baseRow+height)
}

func (in *Input[Out]) render() error {
	if err := in.updateSize(); err != nil {
		return err
	}
	l := in.layout()
	height := in.prompt.Height(&l)

	baseRow, err := in.adjustScrollback(height)
	if err != nil {
		return err
	}
	in.baseRow = baseRow

	if err := in.clear(); err != nil {
		return err
	}

	l = in.layout()
	if err := in.prompt.Render(&l, in.term.b); err != nil {
		return err
	}
	in.renderOverflow = height > in.size.Height

	if in.renderOverflow {
		if err := in.term.b.MoveCursorTo(0, in.size.Height-1); err != nil {
			return err
		}
		if err := in.renderCutoffMsg(); err != nil {
			return err
		}
	}

	return in.flush()
}

func (in *Input[Out]) printError(verr ValidationError) error {
	if err := in.updateSize(); err != nil {
		return err
	}
	l := in.layout()
	height := in.prompt.Height(&l)

	baseRow, err := in.adjustScrollback(height + 1)
	if err != nil {
		return err
	}
	in.baseRow = baseRow

	if err := in.clear(); err != nil {
		return err
	}

	l = in.layout()
	if err := in.prompt.Render(&l, in.term.b); err != nil {
		return err
	}

	if err := in.gotoLastLine(height); err != nil {
		return err
	}

	errLayout := layout.New(2, in.size).WithOffset(0, in.baseRow+height)
	errHeightLayout := errLayout
	errHeight := verr.Height(&errHeightLayout)

	baseRow, err = in.adjustScrollback(height + errHeight)
	if err != nil {
		return err
	}
	in.baseRow = baseRow

	if in.renderOverflow {
		if err := in.term.b.MoveCursorTo(0, in.size.Height-errHeight-1); err != nil {
			return err
		}
		if err := in.term.b.Clear(backend.ClearFromCursorDown); err != nil {
			return err
		}
		if err := in.renderCutoffMsg(); err != nil {
			return err
		}
		if err := in.term.b.MoveCursorTo(0, in.size.Height-errHeight); err != nil {
			return err
		}
	}

	if err := in.term.b.WriteStyled(style.New(style.Str(errorCross)).WithFg(style.Red)); err != nil {
		return err
	}
	if _, err := in.term.b.Write([]byte(" ")); err != nil {
		return err
	}

	if err := verr.Render(&errLayout, in.term.b); err != nil {
		return err
	}

	return in.flush()
}

func (in *Input[Out]) exit() error {
	if err := in.updateSize(); err != nil {
		return err
	}
	l := in.layout()
	height := in.prompt.Height(&l)
	if err := in.gotoLastLine(height); err != nil {
		return err
	}
	return in.term.reset()
}

// Run displays the prompt and processes events until the user finishes it
// with Enter, skips it with Esc (when OnEsc is SkipQuestion), or aborts
// it (Ctrl-C, a closed input stream, or Esc when OnEsc is Terminate). ok
// is true only when the prompt finished; a skip returns ok=false with a
// nil error, and on any error the zero Out and ok=false are returned.
//
// If a panic escapes from prompt code during the run, the terminal is
// still restored (raw mode off, cursor shown) before the panic is
// converted into a call to the process-wide exit handler (see
// SetExitHandler); this mirrors a scope-guarded raw-mode toggle that
// holds even across an unexpected unwind.
func (in *Input[Out]) Run(ctx context.Context, src events.Source) (out Out, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			_ = in.term.reset()
			callExitHandler()
			panic(r)
		}
	}()

	var zero Out

	if err := in.init(); err != nil {
		return zero, false, wrapIO(err)
	}

	for {
		e, err := src.Next(ctx)
		if err != nil {
			return zero, false, wrapIO(err)
		}

		var keyHandled bool

		switch {
		case e.Code == widget.KeyChar && e.Char == 'c' && e.Modifiers.Has(widget.ModControl):
			if err := in.exit(); err != nil {
				return zero, false, wrapIO(err)
			}
			return zero, false, ErrInterrupted

		case e.Code == widget.KeyNull:
			if err := in.exit(); err != nil {
				return zero, false, wrapIO(err)
			}
			return zero, false, ErrEOF

		case e.Code == widget.KeyEsc && in.onEsc == Terminate:
			if err := in.exit(); err != nil {
				return zero, false, wrapIO(err)
			}
			return zero, false, ErrAborted

		case e.Code == widget.KeyEsc && in.onEsc == SkipQuestion:
			if err := in.clear(); err != nil {
				return zero, false, wrapIO(err)
			}
			if err := in.term.reset(); err != nil {
				return zero, false, wrapIO(err)
			}
			return zero, false, nil

		case e.Code == widget.KeyEnter:
			v, verr := in.prompt.Validate()
			if verr != nil {
				if err := in.printError(verr); err != nil {
					return zero, false, wrapIO(err)
				}
				continue
			}
			switch v {
			case Finish:
				if err := in.clear(); err != nil {
					return zero, false, wrapIO(err)
				}
				if err := in.term.reset(); err != nil {
					return zero, false, wrapIO(err)
				}
				return in.prompt.Finish(), true, nil
			case Continue:
				keyHandled = true
			}

		default:
			keyHandled = in.prompt.HandleKey(e)
		}

		if keyHandled {
			if err := in.render(); err != nil {
				return zero, false, wrapIO(err)
			}
		}
	}
}
