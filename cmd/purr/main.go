package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/purrlang/purr/purr"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// cli carries the streams and persistent flags shared by every command.
type cli struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	configPath string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "purr",
		Short:         "Run compiled purr programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.yaml, .yml or .cue)")

	root.AddCommand(
		c.newRunCmd(),
		c.newModulesCmd(),
		c.newJSONCmd(),
		c.newVersionCmd(),
	)
	return root
}

func (c *cli) loadConfig() (purr.Config, error) {
	if c.configPath == "" {
		return purr.Config{}, nil
	}
	cfg, err := purr.LoadConfig(c.configPath)
	if err != nil {
		return purr.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *cli) newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the registered yarn balls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			rt := purr.NewRuntime(cfg, purr.WithHost(purr.HostFuncs{}))
			if err := registerPrograms(rt); err != nil {
				return err
			}
			for _, key := range rt.Namespace().Keys() {
				marker := ""
				if key == rt.Config().EntryPoint {
					marker = " (entry)"
				}
				fmt.Fprintln(c.stdout, key+marker)
			}
			return nil
		},
	}
}

func (c *cli) newJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json [file]",
		Short: "Decode JSON and print it as purr values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			var input []byte
			if len(args) == 1 {
				input, err = os.ReadFile(args[0])
			} else {
				input, err = io.ReadAll(c.stdin)
			}
			if err != nil {
				return fmt.Errorf("read json: %w", err)
			}
			rt := purr.NewRuntime(cfg, purr.WithHost(purr.HostFuncs{}))
			value, err := rt.Decode(string(input))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, purr.Purrify(value))
			return nil
		},
	}
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the purr version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(c.stdout, "purr "+version)
		},
	}
}
