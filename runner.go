package tracery

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tracery-dev/tracery/internal/presentation/markdown"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Runner drives an interactive exploration loop over an Engine using provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms markdown content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Input and Output must be set by the
// caller (use os.Stdin and os.Stdout for a terminal session).
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the exploration loop until EOF or an exit command.
// Each line is either a command ("types", "help", "exit") or a type id
// whose mutation-path catalogue is rendered to the output.
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	if !r.Headless {
		fmt.Fprintln(writer, "--- Tracery Explorer ---")
		fmt.Fprintln(writer, "Enter a type id to catalogue it, 'types' to list, 'exit' to quit.")
	}

	for {
		if !r.Headless {
			fmt.Fprint(writer, "> ")
		}

		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Graceful exit on EOF
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)

		switch input {
		case "":
			continue
		case "exit", "quit":
			if !r.Headless {
				fmt.Fprintln(writer, "Bye!")
			}
			return nil
		case "help":
			fmt.Fprintln(writer, "types          list registered type ids")
			fmt.Fprintln(writer, "<type id>      render the mutation-path catalogue for a type")
			fmt.Fprintln(writer, "exit           leave the explorer")
			continue
		case "types":
			for _, id := range engine.Types() {
				fmt.Fprintln(writer, id)
			}
			continue
		}

		cat, err := engine.Catalogue(ctx, schema.TypeID(input))
		if err != nil {
			fmt.Fprintf(writer, "error: %v\n", err)
			continue
		}

		output := markdown.Render(cat)
		if r.Renderer != nil {
			rendered, err := r.Renderer(output)
			if err == nil {
				output = rendered
			}
		}
		fmt.Fprintln(writer, strings.TrimSpace(output))
	}
}
