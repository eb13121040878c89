// Package batch parses many statement files concurrently. Each statement is
// an independent, pure parse over read-only configuration, so statements
// fan out across a worker pool with no locking; only the record order within
// a single statement is meaningful.
package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/expensetrending/expensetrend/internal/bankformat"
	"github.com/expensetrending/expensetrend/internal/config"
	"github.com/expensetrending/expensetrend/internal/extractor"
	"github.com/expensetrending/expensetrend/internal/models"
	"github.com/expensetrending/expensetrend/internal/parser"
	"github.com/expensetrending/expensetrend/internal/store"
)

// Report summarizes one statement's parse for the run audit: how many
// records came out and how many blocks were skipped, with reasons.
type Report struct {
	Path        string                 `json:"path"`
	Bank        models.Bank            `json:"bank,omitempty"`
	Records     []models.ExpenseRecord `json:"records"`
	Diagnostics models.Diagnostics     `json:"diagnostics"`
	Saved       int                    `json:"saved,omitempty"`
	Err         error                  `json:"-"`
	Error       string                 `json:"error,omitempty"`
}

func (rep *Report) fail(err error) Report {
	rep.Err = err
	rep.Error = err.Error()
	return *rep
}

// Runner parses a set of statement files. Store is optional; when set,
// parsed records are persisted.
type Runner struct {
	Workers int
	Bank    models.Bank // empty means detect per file
	Config  *config.Config
	Store   *store.Store
	Log     *slog.Logger
}

// Run processes every path and returns one report per statement. Reports
// arrive in completion order: ordering across statements carries no meaning.
func (r *Runner) Run(paths []string) []Report {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan string)
	results := make(chan Report)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- r.processOne(path)
			}
		}()
	}
	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	reports := make([]Report, 0, len(paths))
	for rep := range results {
		reports = append(reports, rep)
	}
	return reports
}

func (r *Runner) processOne(path string) Report {
	rep := Report{Path: path, Bank: r.Bank}
	log := r.logger().With("file", filepath.Base(path))

	// The filename convention {BANK}_{DATE}_{name} identifies the bank
	// before the file is even opened, which also selects the PDF password.
	if rep.Bank == "" {
		if bank, err := bankformat.Detect(path, ""); err == nil {
			rep.Bank = bank
		}
	}

	text, err := r.readStatement(path, rep.Bank)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return rep.fail(err)
	}

	if rep.Bank == "" {
		bank, err := bankformat.Detect(path, text)
		if err != nil {
			log.Error("bank detection failed", "error", err)
			return rep.fail(err)
		}
		rep.Bank = bank
	}

	p, err := parser.New(rep.Bank, r.Config.Categorizer())
	if err != nil {
		return rep.fail(err)
	}

	res, err := p.Parse(text)
	if err != nil {
		log.Error("parse failed", "bank", rep.Bank, "error", err)
		return rep.fail(err)
	}
	rep.Records = res.Records
	rep.Diagnostics = res.Diagnostics

	if r.Store != nil {
		saved, err := r.Store.SaveExpenses(res.Records)
		if err != nil {
			return rep.fail(fmt.Errorf("saving records: %w", err))
		}
		rep.Saved = saved
	}

	log.Info("statement parsed",
		"bank", rep.Bank,
		"records", len(rep.Records),
		"rejected", rep.Diagnostics.Rejected)
	return rep
}

// readStatement loads raw statement text: PDFs go through the extractor,
// .txt files are pre-extracted text and pass straight through.
func (r *Runner) readStatement(path string, bank models.Bank) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ".pdf":
		return extractor.ExtractTextCombined(path, r.Config.Password(bank))
	default:
		return "", fmt.Errorf("unsupported statement file %q: expected .pdf or .txt", filepath.Base(path))
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}
