package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/tickline/internal/console"
	"github.com/harrison/tickline/internal/input"
)

// errDemoFailed is returned by the demo task when --fail is set.
var errDemoFailed = errors.New("demo task failed")

// NewDemoCommand creates the demo command
func NewDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Show the animation with a built-in task",
		Long: `Run a built-in task that prints a few numbered steps so the
animation and output modes can be previewed.

Examples:
  tickline demo --style sliding --color cyan
  tickline demo --mode stacked --steps 10
  tickline demo --ask     # prompt for input halfway through
  tickline demo --fail    # end with a failure instead of the finished message`,
		Args: cobra.NoArgs,
		RunE: demoCommand,
	}

	addSessionFlags(cmd)
	cmd.Flags().Int("steps", 5, "Number of steps to print")
	cmd.Flags().Duration("step-delay", 400*time.Millisecond, "Pause between steps")
	cmd.Flags().Bool("ask", false, "Ask for a line of input halfway through")
	cmd.Flags().Bool("fail", false, "Make the task fail")
	return cmd
}

func demoCommand(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	delay, _ := cmd.Flags().GetDuration("step-delay")
	ask, _ := cmd.Flags().GetBool("ask")
	fail, _ := cmd.Flags().GetBool("fail")

	if steps < 0 {
		return fmt.Errorf("--steps must be >= 0, got %d", steps)
	}

	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	session, err := env.session()
	if err != nil {
		return err
	}

	reader := &input.Reader{In: cmd.InOrStdin()}
	task := func() error {
		return runDemo(cmd.Context(), steps, delay, ask, fail, reader)
	}

	if err := session.Run(task); err != nil {
		env.report(err)
		return err
	}
	return nil
}

func runDemo(ctx context.Context, steps int, delay time.Duration, ask, fail bool, reader *input.Reader) error {
	askAt := steps/2 + 1
	for i := 1; i <= steps; i++ {
		console.Printf("step %d of %d\n", i, steps)

		if ask && i == askAt {
			name, err := reader.ReadLine("What is your name? ")
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			console.Printf("hello, %s\n", name)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	if fail {
		return errDemoFailed
	}
	return nil
}
