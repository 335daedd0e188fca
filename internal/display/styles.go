package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/harrison/tickline/internal/glyph"
)

// ListStyles writes one row per registered style: name, sample frames and
// description. The frames are painted with colorTag when colored is true.
func ListStyles(out io.Writer, colorTag string, colored bool) error {
	painter := glyph.NewPainter(colorTag)
	painter.SetEnabled(colored)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFRAMES\tDESCRIPTION")
	for _, style := range glyph.Styles() {
		frames := style.Frames()
		painted := make([]string, len(frames))
		for i, frame := range frames {
			painted[i] = painter.Paint(frame)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", style.Name, strings.Join(painted, " "), style.Description)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write style list: %w", err)
	}
	return nil
}

// ListColors writes the supported color tags, one per line.
func ListColors(out io.Writer, colored bool) error {
	for _, name := range glyph.ColorNames() {
		painter := glyph.NewPainter(name)
		painter.SetEnabled(colored)
		if _, err := fmt.Fprintln(out, painter.Paint(name)); err != nil {
			return fmt.Errorf("failed to write color list: %w", err)
		}
	}
	return nil
}
