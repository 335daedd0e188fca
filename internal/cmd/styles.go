package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/tickline/internal/display"
	"github.com/harrison/tickline/internal/terminal"
)

// NewStylesCommand creates the styles command
func NewStylesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the available animation styles and colors",
		Args:  cobra.NoArgs,
		RunE:  stylesCommand,
	}

	cmd.Flags().String("color", "", "Color used for the sample frames")
	cmd.Flags().Bool("colors", false, "List the color names instead of the styles")
	return cmd
}

func stylesCommand(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colored := cfg.ColorEnabled(terminal.New(out).IsTerminal())

	if listColors, _ := cmd.Flags().GetBool("colors"); listColors {
		return display.ListColors(out, colored)
	}
	return display.ListStyles(out, cfg.Color, colored)
}
