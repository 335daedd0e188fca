// Package display formats user-facing CLI output that is not part of a
// loader session: warnings and the style catalogue.
//
// Warnings are written to stderr in yellow when stderr is a terminal:
//
//	display.Warning{
//	    Title:      "Config file already exists",
//	    Details:    []string{path},
//	    Suggestion: "Use --force to overwrite it",
//	}.Display(os.Stderr)
//
// ListStyles prints every registered glyph style with a colored sample:
//
//	display.ListStyles(os.Stdout, "cyan", true)
//
// All functions accept io.Writer for testability.
package display
