// Package commands implements the CLI commands for the sgen tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sgen/internal/app"
	"go.trai.ch/sgen/internal/build"
	"go.trai.ch/sgen/internal/core/ports"
)

// CLI represents the command line interface for sgen.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	loader  ports.ConfigLoader
	rootCmd *cobra.Command
}

// New creates a new CLI instance from the initialized components.
func New(components *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sgen",
		Short:         "An incremental code generator driving an external schema compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "sgen.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging, including the full compiler argument vector")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     components.App,
		logger:  components.Logger,
		loader:  components.ConfigLoader,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if v, ok := c.logger.(interface{ SetVerbose(bool) }); ok {
			v.SetVerbose(verbose)
		}

		configPath, _ := cmd.Flags().GetString("config")
		if s, ok := c.loader.(interface{ SetPath(string) }); ok {
			s.SetPath(configPath)
		}
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut sets the writer for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
