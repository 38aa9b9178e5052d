// Package cli provides the command-line interface for CrossDB.
package cli

import (
	"context"

	"github.com/leapstack-labs/crossdb/internal/cli/commands"
	"github.com/leapstack-labs/crossdb/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "crossdb",
		Short: "CrossDB - cross-dialect database abstraction layer",
		Long: `CrossDB normalizes declarative schema descriptions, renders
dialect-specific DDL, and executes statements with unified error
reporting and profiling across MySQL, SQLite, and Oracle.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./crossdb.yaml)")
	rootCmd.PersistentFlags().StringP("conn", "c", "", "Connection profile to use")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		commands.NewDDLCommand(),
		commands.NewCreateCommand(),
		commands.NewTablesCommand(),
		commands.NewExistsCommand(),
		commands.NewExecCommand(),
		commands.NewQueryCommand(),
		commands.NewOptimizeCommand(),
		commands.NewVersionCommand(Version, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
