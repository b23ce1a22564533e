package prompts

import (
	"github.com/majorcontext/prompt/backend"
	"github.com/majorcontext/prompt/header"
	"github.com/majorcontext/prompt/input"
	"github.com/majorcontext/prompt/layout"
	"github.com/majorcontext/prompt/selectlist"
	"github.com/majorcontext/prompt/style"
	"github.com/majorcontext/prompt/widget"
)

const choicePageSize = 15

// choiceList is the selectlist.List backing a Choice prompt: a flat list
// of one-line string options.
type choiceList struct {
	options []string
}

func (c *choiceList) RenderItem(index int, hovered bool, l layout.Layout, b backend.Backend) error {
	prefix := "  "
	fg := style.Reset
	if hovered {
		prefix = "› "
		fg = style.Cyan
	}
	if _, err := b.Write([]byte(prefix)); err != nil {
		return err
	}
	return b.WriteStyled(style.New(style.Str(c.options[index])).WithFg(fg))
}

func (c *choiceList) IsSelectable(int) bool { return true }
func (c *choiceList) PageSize() int         { return choicePageSize }
func (c *choiceList) ShouldLoop() bool      { return false }
func (c *choiceList) HeightAt(int, layout.Layout) uint16 { return 1 }
func (c *choiceList) Len() int              { return len(c.options) }
func (c *choiceList) Item(i int) string     { return c.options[i] }

// Choice is a single-selection prompt over a fixed list of options.
type Choice struct {
	base[*selectlist.Select[*choiceList]]
}

// NewChoice creates a Choice prompt. Panics if options is empty, via
// selectlist.New.
func NewChoice(message string, options []string) *Choice {
	c := &Choice{}
	c.Header = header.New(message)
	c.Body = selectlist.New[*choiceList](&choiceList{options: options})
	return c
}

// Validate always succeeds: some option is always hovered.
func (c *Choice) Validate() (input.Validation, input.ValidationError) {
	return input.Finish, nil
}

// Finish returns the hovered option.
func (c *Choice) Finish() string {
	return selectlist.Selected[string](c.Body)
}

var _ input.Prompt[string] = (*Choice)(nil)
var _ widget.Widget = (*Choice)(nil)
