package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/expensetrending/expensetrend/internal/api"
	"github.com/expensetrending/expensetrend/internal/config"
	"github.com/expensetrending/expensetrend/internal/store"
)

func newServeCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			log := slog.Default()
			app := api.NewServer(cfg, st, log).App()
			log.Info("listening", "addr", cfg.ListenAddr, "db", cfg.DBPath)
			return app.Listen(cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
