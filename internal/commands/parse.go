package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/expensetrending/expensetrend/internal/batch"
	"github.com/expensetrending/expensetrend/internal/config"
	"github.com/expensetrending/expensetrend/internal/models"
	"github.com/expensetrending/expensetrend/internal/store"
	"github.com/expensetrending/expensetrend/internal/writer"
)

func newParseCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		bankName string
		save     bool
		output   string
		asJSON   bool
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "parse <statement>...",
		Short: "Parse statement files (.pdf or .txt) into expense records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var bank models.Bank
			if bankName != "" {
				bank = models.Bank(bankName)
				if _, ok := knownBank(bank); !ok {
					return fmt.Errorf("unknown bank %q: use hdfc, sbi, or idfc", bankName)
				}
			}

			var st *store.Store
			if save {
				st, err = store.Open(cfg.DBPath)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			if workers <= 0 {
				workers = cfg.Workers
			}
			runner := &batch.Runner{
				Workers: workers,
				Bank:    bank,
				Config:  cfg,
				Store:   st,
				Log:     slog.Default(),
			}
			reports := runner.Run(args)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				printReports(cmd, reports)
			}

			if output != "" {
				var all []models.ExpenseRecord
				for _, rep := range reports {
					all = append(all, rep.Records...)
				}
				if err := writer.WriteCSVFile(output, all); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", len(all), output)
			}

			for _, rep := range reports {
				if rep.Err != nil {
					return fmt.Errorf("%d of %d statements failed", failed(reports), len(reports))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bankName, "bank", "", "bank format (hdfc, sbi, idfc); detected per file when empty")
	cmd.Flags().BoolVar(&save, "save", false, "persist parsed records to the database")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write all parsed records to a CSV file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print per-statement reports as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "parse workers (default: config, then CPU count)")

	return cmd
}

func knownBank(bank models.Bank) (models.Bank, bool) {
	for _, b := range models.Banks() {
		if bank == b {
			return b, true
		}
	}
	return "", false
}

func printReports(cmd *cobra.Command, reports []batch.Report) {
	out := cmd.OutOrStdout()
	for _, rep := range reports {
		if rep.Err != nil {
			fmt.Fprintf(out, "%s: FAILED: %v\n", rep.Path, rep.Err)
			continue
		}
		fmt.Fprintf(out, "%s: %s, %d records, %d rejected",
			rep.Path, rep.Bank, len(rep.Records), rep.Diagnostics.Rejected)
		if rep.Saved > 0 {
			fmt.Fprintf(out, ", %d saved", rep.Saved)
		}
		fmt.Fprintln(out)
		for reason, n := range rep.Diagnostics.Reasons {
			fmt.Fprintf(out, "  %s: %d\n", reason, n)
		}
	}
}

func failed(reports []batch.Report) int {
	var n int
	for _, rep := range reports {
		if rep.Err != nil {
			n++
		}
	}
	return n
}
