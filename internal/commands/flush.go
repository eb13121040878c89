package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expensetrending/expensetrend/internal/config"
	"github.com/expensetrending/expensetrend/internal/store"
)

func newFlushCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Delete all stored expense records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			deleted, err := st.Flush()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records from %s\n", deleted, cfg.DBPath)
			return nil
		},
	}
}
