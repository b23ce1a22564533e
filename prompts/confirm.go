package prompts

import (
	"github.com/majorcontext/prompt/header"
	"github.com/majorcontext/prompt/input"
	"github.com/majorcontext/prompt/stringinput"
	"github.com/majorcontext/prompt/text"
	"github.com/majorcontext/prompt/widget"
)

// Confirm is a yes/no prompt.
type Confirm struct {
	base[*stringinput.StringInput]
	hasDefault bool
	def        bool
}

func onlyYN(r rune) (rune, bool) {
	switch r {
	case 'y', 'Y', 'n', 'N':
		return r, true
	}
	return 0, false
}

// NewConfirm creates a Confirm prompt with no default, requiring an
// explicit y/n answer.
func NewConfirm(message string) *Confirm {
	c := &Confirm{}
	c.Header = header.New(message).WithHint("y/n")
	c.Body = stringinput.New(onlyYN)
	return c
}

// WithDefault sets the answer used when the user presses Enter without
// typing anything.
func (c *Confirm) WithDefault(def bool) *Confirm {
	c.hasDefault = true
	c.def = def
	if def {
		c.Header.WithHint("Y/n")
	} else {
		c.Header.WithHint("y/N")
	}
	return c
}

// Validate requires a y/n answer unless a default was set.
func (c *Confirm) Validate() (input.Validation, input.ValidationError) {
	if c.Body.HasValue() || c.hasDefault {
		return input.Finish, nil
	}
	return input.Continue, text.New("please type y or n")
}

// Finish resolves the typed character (only the first one counts) or the
// default.
func (c *Confirm) Finish() bool {
	if v, ok := c.Body.Finish(); ok && v != "" {
		switch v[0] {
		case 'y', 'Y':
			return true
		case 'n', 'N':
			return false
		}
	}
	return c.def
}

var _ input.Prompt[bool] = (*Confirm)(nil)
var _ widget.Widget = (*Confirm)(nil)
