package input

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/events"
	"github.com/majorcontext/prompt/header"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/stringinput"
	"github.com/majorcontext/prompt/text"
	"github.com/majorcontext/prompt/widget"
)

// stubPrompt is a minimal Prompt[string] wrapping a StringInput, enough to
// drive Input.Run without pulling in the prompts package (which would make
// this an import cycle: prompts already depends on input).
type stubPrompt struct {
	header *header.Header
	body   *stringinput.StringInput
	reject bool
}

func newStubPrompt() *stubPrompt {
	return &stubPrompt{header: header.New("Name"), body: stringinput.New(stringinput.NoFilter)}
}

func (p *stubPrompt) Height(l *layout.Layout) uint16 {
	p.header.Height(l)
	return p.body.Height(l)
}

func (p *stubPrompt) Render(l *layout.Layout, b backend.Backend) error {
	if err := p.header.Render(l, b); err != nil {
		return err
	}
	return p.body.Render(l, b)
}

func (p *stubPrompt) CursorPos(l layout.Layout) (x, y uint16) {
	hx, hy := p.header.CursorPos(l)
	l.LineOffset = hx
	l.OffsetY += hy
	return p.body.CursorPos(l)
}

func (p *stubPrompt) HandleKey(e widget.KeyEvent) bool {
	return p.body.HandleKey(e)
}

func (p *stubPrompt) Validate() (Validation, ValidationError) {
	if p.reject && !p.body.HasValue() {
		return Continue, text.New("a value is required")
	}
	return Finish, nil
}

func (p *stubPrompt) Finish() string {
	v, _ := p.body.Finish()
	return v
}

func runWith(t *testing.T, prompt *stubPrompt, keys string, opts ...func(*Input[string])) (string, bool, error) {
	t.Helper()
	b := backend.NewTestBackend(40, 10)
	in := New[string](prompt, b)
	for _, opt := range opts {
		opt(in)
	}
	return in.Run(context.Background(), events.NewReader(strings.NewReader(keys)))
}

func TestRunFinishesOnEnter(t *testing.T) {
	out, ok, err := runWith(t, newStubPrompt(), "alice\r")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ok {
		t.Fatal("Run() ok = false, want true")
	}
	if out != "alice" {
		t.Errorf("Run() = %q, want %q", out, "alice")
	}
}

func TestRunCtrlCReturnsInterrupted(t *testing.T) {
	_, ok, err := runWith(t, newStubPrompt(), "\x03")
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Run() err = %v, want ErrInterrupted", err)
	}
	if ok {
		t.Error("Run() ok = true, want false")
	}
}

func TestRunEOFReturnsErrEOF(t *testing.T) {
	_, ok, err := runWith(t, newStubPrompt(), "")
	if !errors.Is(err, ErrEOF) {
		t.Fatalf("Run() err = %v, want ErrEOF", err)
	}
	if ok {
		t.Error("Run() ok = true, want false")
	}
}

func TestRunEscIgnoredByDefault(t *testing.T) {
	// One byte per Read, so the Esc arrives on its own and decodes as a
	// bare Esc rather than as Alt-h.
	src := events.NewReader(iotest.OneByteReader(strings.NewReader("\x1bhi\r")))
	out, ok, err := New[string](newStubPrompt(), backend.NewTestBackend(40, 10)).Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ok || out != "hi" {
		t.Errorf("Run() = (%q, %v), want (\"hi\", true); Esc should be ignored and passed through", out, ok)
	}
}

func TestRunEscTerminates(t *testing.T) {
	_, ok, err := runWith(t, newStubPrompt(), "\x1b", func(in *Input[string]) {
		in.OnEsc(Terminate)
	})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() err = %v, want ErrAborted", err)
	}
	if ok {
		t.Error("Run() ok = true, want false")
	}
}

func TestRunEscSkips(t *testing.T) {
	out, ok, err := runWith(t, newStubPrompt(), "\x1b", func(in *Input[string]) {
		in.OnEsc(SkipQuestion)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ok {
		t.Error("Run() ok = true, want false for a skipped question")
	}
	if out != "" {
		t.Errorf("Run() = %q, want the zero value on skip", out)
	}
}

func TestRunValidationErrorKeepsRunning(t *testing.T) {
	p := newStubPrompt()
	p.reject = true
	out, ok, err := runWith(t, p, "\rname\r")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ok || out != "name" {
		t.Errorf("Run() = (%q, %v), want (\"name\", true) after a rejected empty Enter then a real value", out, ok)
	}
}
