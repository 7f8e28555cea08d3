package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/purrlang/purr/purr"
	"github.com/spf13/cobra"
)

func (c *cli) newRunCmd() *cobra.Command {
	var (
		entry   string
		console bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a compiled-in program",
		Long: `Runs the entry yarn ball and everything it imports.

Examples:
  purr run                  # run "main"
  purr run --entry cats     # load a single yarn ball
  purr run --console        # force the terminal console`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if entry != "" {
				cfg.EntryPoint = entry
			}
			if console {
				cfg.Console = true
			}

			interactive := useConsole(cfg, c.stdin)
			logger, closer, err := purr.NewLogger(cfg, logOutput(interactive, c.stderr))
			if err != nil {
				return err
			}
			defer closer.Close()
			if c.configPath != "" {
				logger.Debug("loaded config", "path", c.configPath)
			}

			program := func(ctx context.Context, host purr.Host) error {
				rt := purr.NewRuntime(cfg, purr.WithHost(host), purr.WithLogger(logger))
				if err := registerPrograms(rt); err != nil {
					return err
				}
				if _, err := rt.Run(ctx); err != nil {
					return fmt.Errorf("run %s: %w", rt.Config().EntryPoint, err)
				}
				return nil
			}

			if interactive {
				logger.Debug("starting console host")
				return runConsole(cmd.Context(), program)
			}
			return program(cmd.Context(), purr.NewStdioHost(c.stdin, c.stdout))
		},
	}
	cmd.Flags().StringVar(&entry, "entry", "", "yarn ball to run (default from config, else \"main\")")
	cmd.Flags().BoolVar(&console, "console", false, "use the terminal console host")
	return cmd
}

// logOutput is where terminal log lines go. The console owns the terminal
// while it runs, so only the configured log file sees records then.
func logOutput(console bool, stderr io.Writer) io.Writer {
	if console {
		return io.Discard
	}
	return stderr
}

// useConsole picks the console host when asked to, or when stdin is a terminal.
func useConsole(cfg purr.Config, stdin io.Reader) bool {
	if cfg.Console {
		return true
	}
	f, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
