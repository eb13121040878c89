// Package api exposes statement parsing and stored-expense queries over
// HTTP.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/expensetrending/expensetrend/internal/bankformat"
	"github.com/expensetrending/expensetrend/internal/buildinfo"
	"github.com/expensetrending/expensetrend/internal/config"
	"github.com/expensetrending/expensetrend/internal/extractor"
	"github.com/expensetrending/expensetrend/internal/models"
	"github.com/expensetrending/expensetrend/internal/parser"
	"github.com/expensetrending/expensetrend/internal/store"
	"github.com/expensetrending/expensetrend/internal/writer"
)

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success     bool                   `json:"success"`
	Error       string                 `json:"error,omitempty"`
	Bank        string                 `json:"bank,omitempty"`
	Records     []models.ExpenseRecord `json:"records"`
	Diagnostics models.Diagnostics     `json:"diagnostics"`
	TotalDebit  string                 `json:"totalDebit"`
	TotalCredit string                 `json:"totalCredit"`
	Count       int                    `json:"count"`
	Saved       int                    `json:"saved"`
	CSV         string                 `json:"csv,omitempty"`
}

// Server holds the HTTP handlers and their dependencies. Store may be nil;
// the parse endpoint then works without persistence and the query endpoints
// return 503.
type Server struct {
	cfg   *config.Config
	store *store.Store
	log   *slog.Logger
}

// NewServer builds a Server. A nil logger falls back to slog.Default.
func NewServer(cfg *config.Config, st *store.Store, log *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, store: st, log: log}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             32 << 20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	app.Get("/api/health", s.handleHealth)
	app.Post("/api/parse", s.handleParse)
	app.Get("/api/transactions", s.handleTransactions)
	app.Get("/api/summary", s.handleSummary)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	banks := make([]string, 0, len(models.Banks()))
	for _, b := range models.Banks() {
		banks = append(banks, string(b))
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
		"banks":   banks,
	})
}

// handleParse accepts a statement as either an uploaded file (form field
// "file", .pdf or .txt) or pre-extracted text (form field "text"). The bank
// is taken from the "bank" field or detected; "save=true" persists the
// records when a store is attached.
func (s *Server) handleParse(c *fiber.Ctx) error {
	bank, err := bankFromParam(c.FormValue("bank"))
	if err != nil {
		return parseError(c, fiber.StatusBadRequest, err.Error())
	}

	text := c.FormValue("text")
	filename := ""
	if text == "" {
		header, err := c.FormFile("file")
		if err != nil {
			return parseError(c, fiber.StatusBadRequest,
				"no statement provided: upload form field 'file' or send 'text'")
		}
		filename = header.Filename

		if bank == "" {
			if detected, err := bankformat.Detect(filename, ""); err == nil {
				bank = detected
			}
		}

		text, err = s.readUpload(c, header, bank)
		if err != nil {
			return parseError(c, fiber.StatusUnprocessableEntity,
				fmt.Sprintf("extraction failed: %v", err))
		}
	}

	if bank == "" {
		detected, err := bankformat.Detect(filename, text)
		if err != nil {
			return parseError(c, fiber.StatusBadRequest, err.Error())
		}
		bank = detected
	}

	p, err := parser.New(bank, s.cfg.Categorizer())
	if err != nil {
		return parseError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := p.Parse(text)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyInput) {
			return parseError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return parseError(c, fiber.StatusInternalServerError, err.Error())
	}
	observeParse(bank, res)

	resp := ParseResponse{
		Success:     true,
		Bank:        string(bank),
		Records:     res.Records,
		Diagnostics: res.Diagnostics,
		Count:       len(res.Records),
	}
	// nil marshals to JSON null, not [].
	if resp.Records == nil {
		resp.Records = []models.ExpenseRecord{}
	}

	var debit, credit decimal.Decimal
	for _, rec := range res.Records {
		if rec.Type == models.TypeDebit {
			debit = debit.Add(rec.Amount)
		} else {
			credit = credit.Add(rec.Amount)
		}
	}
	resp.TotalDebit = debit.StringFixed(2)
	resp.TotalCredit = credit.StringFixed(2)

	var csvBuf bytes.Buffer
	if err := writer.WriteCSV(&csvBuf, resp.Records); err == nil {
		resp.CSV = csvBuf.String()
	}

	if c.FormValue("save") == "true" && s.store != nil {
		saved, err := s.store.SaveExpenses(res.Records)
		if err != nil {
			return parseError(c, fiber.StatusInternalServerError,
				fmt.Sprintf("saving records: %v", err))
		}
		resp.Saved = saved
	}

	s.log.Info("statement parsed",
		"bank", bank,
		"records", resp.Count,
		"rejected", res.Diagnostics.Rejected,
		"saved", resp.Saved)
	return c.JSON(resp)
}

func (s *Server) handleTransactions(c *fiber.Ctx) error {
	if s.store == nil {
		return storeUnavailable(c)
	}

	f := store.Filter{
		Bank:     models.Bank(c.Query("bank")),
		Category: c.Query("category"),
		Type:     models.TransactionType(c.Query("type")),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid limit %q", limit),
			})
		}
		f.Limit = n
	}

	expenses, err := s.store.List(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if expenses == nil {
		expenses = []store.StoredExpense{}
	}
	return c.JSON(fiber.Map{
		"transactions": expenses,
		"count":        len(expenses),
	})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	if s.store == nil {
		return storeUnavailable(c)
	}

	count, err := s.store.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	categories, err := s.store.CategoryBreakdown()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	monthly, err := s.store.MonthlyTrend()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var spend decimal.Decimal
	for _, ct := range categories {
		spend = spend.Add(ct.Total)
	}
	if categories == nil {
		categories = []store.CategoryTotal{}
	}
	if monthly == nil {
		monthly = []store.MonthTotal{}
	}
	return c.JSON(fiber.Map{
		"count":      count,
		"totalSpend": spend.StringFixed(2),
		"categories": categories,
		"monthly":    monthly,
	})
}

// readUpload loads the uploaded statement's text. Plain-text uploads are
// read directly; PDFs are spooled to a temp file for the extractor.
func (s *Server) readUpload(c *fiber.Ctx, header *multipart.FileHeader, bank models.Bank) (string, error) {
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".txt":
		f, err := header.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ".pdf":
		tmp, err := os.CreateTemp("", "statement-*.pdf")
		if err != nil {
			return "", err
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		if err := c.SaveFile(header, tmp.Name()); err != nil {
			return "", err
		}
		return extractor.ExtractTextCombined(tmp.Name(), s.cfg.Password(bank))
	default:
		return "", fmt.Errorf("unsupported statement file %q: expected .pdf or .txt", header.Filename)
	}
}

func bankFromParam(param string) (models.Bank, error) {
	if param == "" {
		return "", nil
	}
	bank := models.Bank(strings.ToLower(param))
	for _, b := range models.Banks() {
		if bank == b {
			return bank, nil
		}
	}
	return "", fmt.Errorf("unknown bank %q: use hdfc, sbi, or idfc", param)
}

func parseError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success: false,
		Error:   msg,
		Records: []models.ExpenseRecord{},
	})
}

func storeUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "no database attached",
	})
}

