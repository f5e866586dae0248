package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// When stdout is not a terminal (pipes, redirects, CI) the markdown is
// passed through untouched so output stays grep-able.
func NewRenderer() func(string) (string, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	width := 100
	if w, _, err := term.GetSize(fd); err == nil && w > 0 && w < width {
		width = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
