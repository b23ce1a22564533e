package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/events"
	"github.com/majorcontext/prompt/input"
	"github.com/mattn/go-isatty"
)

// errNotATTY is returned when a prompt subcommand is run with stdin or
// stdout not attached to a terminal; there is no sensible fallback for
// an interactive prompt in that case.
var errNotATTY = errors.New("promptdemo: stdin and stdout must both be a terminal")

// runPrompt wires prompt against the real controlling terminal and drives
// it to completion, translating the driver's abort/interrupt sentinels
// into a plain "cancelled" error and a skip into a "skipped" error.
func runPrompt[Out any](prompt input.Prompt[Out]) (Out, error) {
	var zero Out

	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return zero, errNotATTY
	}

	b := backend.NewQueued(os.Stdout)
	src := events.NewReader(os.Stdin)

	out, ok, err := input.New(prompt, b).
		HideCursor().
		OnEsc(input.Terminate).
		Run(context.Background(), src)
	if err != nil {
		if errors.Is(err, input.ErrAborted) || errors.Is(err, input.ErrInterrupted) {
			return zero, fmt.Errorf("cancelled")
		}
		return zero, err
	}
	if !ok {
		return zero, fmt.Errorf("skipped")
	}
	return out, nil
}
