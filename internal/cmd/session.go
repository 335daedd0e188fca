package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/tickline/internal/config"
	"github.com/harrison/tickline/internal/display"
	"github.com/harrison/tickline/internal/loader"
	"github.com/harrison/tickline/internal/logger"
	"github.com/harrison/tickline/internal/slot"
	"github.com/harrison/tickline/internal/terminal"
)

// ExitCodeError carries a process exit code out of a command.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// addSessionFlags registers the flags shared by commands that run a session.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("message", "", "Message shown next to the animation")
	cmd.Flags().String("done", "", "Message shown when the task succeeds")
	cmd.Flags().String("interval", "", "Seconds between frames (e.g. 0.1) or a duration (100ms)")
	cmd.Flags().String("color", "", "Animation color")
	cmd.Flags().String("mode", "", "Output mode: inline or stacked")
	cmd.Flags().String("style", "", "Animation style (see 'tickline styles')")
}

// changedString returns a pointer to the flag's value when it was set.
func changedString(cmd *cobra.Command, name string) *string {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// loadConfig reads the config file named by --config, or the one in the
// tickline home, and merges the command's flags over it.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
		configPath = path
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	flags := config.Flags{
		LoadingMessage:  changedString(cmd, "message"),
		FinishedMessage: changedString(cmd, "done"),
		Color:           changedString(cmd, "color"),
		Mode:            changedString(cmd, "mode"),
		Style:           changedString(cmd, "style"),
		LogLevel:        changedString(cmd, "log-level"),
		LogDir:          changedString(cmd, "log-dir"),
	}
	if s := changedString(cmd, "interval"); s != nil {
		interval, err := config.ParseInterval(*s)
		if err != nil {
			return nil, "", err
		}
		flags.Interval = &interval
	}
	cfg.MergeWithFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, configPath, nil
}

// environment is what a session-running command needs: the merged config,
// a console logger for before and after the session, and a file logger for
// while the session owns the terminal.
type environment struct {
	cfg     *config.Config
	term    *terminal.Terminal
	console *logger.ConsoleLogger
	file    *logger.FileLogger
}

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	env := &environment{
		cfg:     cfg,
		term:    terminal.New(cmd.OutOrStdout()),
		console: logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
	}
	env.console.LogDebug(fmt.Sprintf("config: %s", configPath))

	if cfg.LogDir != "" {
		file, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		env.file = file
		env.console.LogDebug(fmt.Sprintf("run log: %s", file.Path()))
	}

	if err := slot.Default.SetLockFile(cfg.LockFile); err != nil {
		env.Close()
		return nil, err
	}

	if !env.term.IsTerminal() && cfg.ForceColor == nil {
		display.WarnNotTerminal().Display(cmd.ErrOrStderr())
	}
	return env, nil
}

// session builds a loader session drawing on the command's stdout.
func (e *environment) session() (*loader.Session, error) {
	lc, err := e.cfg.LoaderConfig()
	if err != nil {
		return nil, err
	}

	opts := []loader.Option{
		loader.WithTerminal(e.term),
		loader.WithColorEnabled(e.cfg.ColorEnabled(e.term.IsTerminal())),
	}
	if e.file != nil {
		opts = append(opts, loader.WithLogger(e.file))
	}
	return loader.New(lc, opts...)
}

// report logs err after the session has released the terminal.
func (e *environment) report(err error) {
	if err == nil {
		return
	}
	var writeErr *loader.TerminalWriteError
	if errors.As(err, &writeErr) {
		e.console.LogError(fmt.Sprintf("animation stopped: %v", writeErr))
		return
	}
	e.console.LogError(err.Error())
}

func (e *environment) Close() {
	if e.file != nil {
		if err := e.file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close run log: %v\n", err)
		}
	}
}
