package markdown

import (
	"github.com/charmbracelet/glamour"
)

// TerminalRenderer renders markdown for a terminal. It falls back to the
// plain source when styling fails.
type TerminalRenderer struct {
	tr *glamour.TermRenderer
}

func NewTerminalRenderer(width int, opts ...glamour.TermRendererOption) (*TerminalRenderer, error) {
	if width <= 0 {
		width = 80
	}
	base := []glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	}
	tr, err := glamour.NewTermRenderer(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &TerminalRenderer{tr: tr}, nil
}

func (t *TerminalRenderer) Render(src string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = src
		}
	}()

	out, err := t.tr.Render(src)
	if err != nil {
		return src
	}
	return out
}
