package prompts

import (
	"github.com/majorcontext/prompt/header"
	"github.com/majorcontext/prompt/input"
	"github.com/majorcontext/prompt/stringinput"
	"github.com/majorcontext/prompt/widget"
)

// Input is a free-text prompt.
type Input struct {
	base[*stringinput.StringInput]
	hasDefault bool
	def        string
}

// NewInput creates a free-text Input prompt with no default.
func NewInput(message string) *Input {
	i := &Input{}
	i.Header = header.New(message)
	i.Body = stringinput.New(stringinput.NoFilter)
	return i
}

// WithDefault sets the answer used when the user submits without typing
// anything, shown as the header's hint.
func (i *Input) WithDefault(def string) *Input {
	i.hasDefault = true
	i.def = def
	i.Header.WithHint(def)
	return i
}

// WithMask renders typed input as a repeated mask character instead of
// its real value, for secret-ish fields that still need visible length
// feedback.
func (i *Input) WithMask(mask rune) *Input {
	i.Body.WithMask(mask)
	return i
}

// Validate never rejects input; when nothing was typed, Finish falls back
// to the default.
func (i *Input) Validate() (input.Validation, input.ValidationError) {
	return input.Finish, nil
}

// Finish returns the typed value, or the default if nothing was typed.
func (i *Input) Finish() string {
	if v, ok := i.Body.Finish(); ok {
		return v
	}
	return i.def
}

var _ input.Prompt[string] = (*Input)(nil)
var _ widget.Widget = (*Input)(nil)
