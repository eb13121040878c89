// Package parser converts raw bank-statement text into normalized expense
// records. Parsing is a pure computation over the input string and the
// read-only bank descriptors: no I/O, no shared mutable state, safe to run
// concurrently for different statements.
package parser

import (
	"errors"
	"strings"

	"github.com/expensetrending/expensetrend/internal/bankformat"
	"github.com/expensetrending/expensetrend/internal/categorize"
	"github.com/expensetrending/expensetrend/internal/models"
)

// ErrEmptyInput is returned when the statement text is empty or whitespace
// only. It is the only way an otherwise well-formed parse call fails besides
// an unknown bank.
var ErrEmptyInput = errors.New("statement text is empty")

// Result is the outcome of parsing one statement: records in document order
// plus a diagnostics summary of everything that was dropped.
type Result struct {
	Bank        models.Bank            `json:"bank"`
	Records     []models.ExpenseRecord `json:"records"`
	Diagnostics models.Diagnostics     `json:"diagnostics"`
}

// StatementParser parses statements for a single bank.
type StatementParser struct {
	desc        *bankformat.Descriptor
	categorizer *categorize.Categorizer
}

// New returns a parser for the given bank, or bankformat.ErrUnknownBank when
// no descriptor is registered. A nil categorizer selects the built-in rule
// table.
func New(bank models.Bank, c *categorize.Categorizer) (*StatementParser, error) {
	d, err := bankformat.Lookup(bank)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = categorize.Default()
	}
	return &StatementParser{desc: d, categorizer: c}, nil
}

// Bank returns the bank this parser was built for.
func (p *StatementParser) Bank() models.Bank {
	return p.desc.Bank
}

// BankName returns the human-readable bank name.
func (p *StatementParser) BankName() string {
	return p.desc.Name
}

// Parse runs the full pipeline over one statement: segment, match,
// normalize, categorize. A failing block is counted and skipped, never fatal
// for the statement; partial results are the expected outcome of noisy
// input. Zero valid records is a valid result unless the input itself is
// empty.
func (p *StatementParser) Parse(rawText string) (*Result, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	res := &Result{Bank: p.desc.Bank}
	blocks := Segment(rawText, p.desc)
	res.Diagnostics.BlocksSeen = len(blocks)

	for _, block := range blocks {
		raw, ok := Match(block, p.desc)
		if !ok {
			res.Diagnostics.Reject(models.ReasonNoFieldMatch)
			continue
		}

		rec, err := Normalize(raw, p.desc)
		if err != nil {
			reason := models.ReasonNoFieldMatch
			var rej *RejectError
			if errors.As(err, &rej) {
				reason = rej.Reason
			}
			res.Diagnostics.Reject(reason)
			continue
		}

		rec.Category = p.categorizer.Categorize(rec.Description)
		res.Records = append(res.Records, rec)
		res.Diagnostics.Matched++
	}

	return res, nil
}
