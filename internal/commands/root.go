// Package commands wires the expensetrend CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expensetrending/expensetrend/internal/buildinfo"
	"github.com/expensetrending/expensetrend/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "expensetrend",
		Short:   "Parse bank statements into categorized expense records",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "expensetrend.toml", "path to config file")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	rootCmd.AddCommand(newParseCommand(loadConfig))
	rootCmd.AddCommand(newServeCommand(loadConfig))
	rootCmd.AddCommand(newFlushCommand(loadConfig))

	return rootCmd
}
