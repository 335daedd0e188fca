package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command under the loading animation",
		Long: `Run a command while the loading animation plays.

The command's stdout and stderr are captured and shown next to the
animation (--mode inline) or stacked above it (--mode stacked). When the
command succeeds the animation is replaced by the finished message; when
it fails the line is cleared and tickline exits with the command's status.

Examples:
  tickline run -- make build
  tickline run --mode stacked --style dots -- go test ./...
  tickline run --message "Syncing" --done "Synced" --interval 0.2 -- rsync -a src/ dst/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCommand,
	}

	addSessionFlags(cmd)
	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	session, err := env.session()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.console.LogDebug(fmt.Sprintf("running %s", strings.Join(args, " ")))
	err = session.Run(func() error {
		child := exec.CommandContext(ctx, args[0], args[1:]...)
		child.Stdin = cmd.InOrStdin()
		child.Stdout = session.Writer()
		child.Stderr = session.Writer()
		return child.Run()
	})
	if err == nil {
		return nil
	}

	env.report(err)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal.
			code = 130
		}
		return &ExitCodeError{Code: code, Err: err}
	}
	return fmt.Errorf("failed to run %s: %w", args[0], err)
}
