package agent

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Renderer is an interface for rendering markdown content
type Renderer interface {
	Render(in string) (string, error)
}

// PlainTextRenderer is a renderer that returns content as-is without
// formatting. Used for piped output and as a fallback when glamour
// rendering fails.
type PlainTextRenderer struct{}

// Render returns the input unchanged
func (p *PlainTextRenderer) Render(in string) (string, error) {
	return in, nil
}

// IsTTY returns true if stdout is connected to a terminal
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// baseStyle returns the appropriate glamour style based on terminal background.
func baseStyle() ansi.StyleConfig {
	style := styles.LightStyleConfig
	if termenv.HasDarkBackground() {
		style = styles.DarkStyleConfig
	}
	style.Document.BlockPrefix = ""
	return style
}

// NewRenderer creates a renderer appropriate for the current context.
// Returns a styled glamour renderer for TTY contexts, or a plain
// passthrough otherwise.
func NewRenderer() Renderer {
	return newRendererForTTY(IsTTY())
}

func newRendererForTTY(isTTY bool) Renderer {
	if !isTTY {
		return &PlainTextRenderer{}
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(baseStyle()),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return &PlainTextRenderer{}
	}
	return renderer
}
