package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Details    []string // Related items such as paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning to out, in yellow when out is a terminal.
func (w Warning) Display(out io.Writer) {
	fmt.Fprint(out, w.Render(isTerminal(out)))
}

// Render formats the warning, colored when colored is true.
func (w Warning) Render(colored bool) string {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	for i, detail := range w.Details {
		fmt.Fprintf(&b, "      %d. %s\n", i+1, detail)
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	yellow := color.New(color.FgYellow)
	if colored {
		yellow.EnableColor()
	} else {
		yellow.DisableColor()
	}
	return yellow.Sprint(b.String())
}

// WarnConfigExists is shown when config init would overwrite a file.
func WarnConfigExists(path string) Warning {
	return Warning{
		Title:      "Config file already exists",
		Details:    []string{path},
		Suggestion: "Use --force to overwrite it",
	}
}

// WarnNotTerminal is shown when the animation target is not a terminal.
func WarnNotTerminal() Warning {
	return Warning{
		Title:   "stdout is not a terminal",
		Message: "The animation will be written as plain carriage-return frames",
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
