package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hakley10/convert-and-minimize/internal/config"
	"github.com/Hakley10/convert-and-minimize/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// settings is loaded before any subcommand runs.
	settings config.Config
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "automata",
		Short: "Convert NFAs to DFAs and minimize them",
		Long: `automata stores finite automata in SQLite, converts NFAs (with epsilon
moves) to DFAs by subset construction and minimizes DFAs by partition
refinement.

Composite states are shown by their canonical labels, e.g. {q0,q1}.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			logging.Setup(cfg.Log)
			settings = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newMinimizeCommand())
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newDemoCommand())

	return rootCmd
}
