package bankformat

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/expensetrending/expensetrend/internal/models"
)

// ErrUnknownBank is returned when no descriptor is registered for a bank
// identifier. It is fatal for the statement that requested it.
var ErrUnknownBank = errors.New("unknown bank")

// HDFC credit card statements come in two layouts.
//
// Older: DD/MM/YYYY| HH:MM DESCRIPTION C/D AMOUNT
//
//	19/10/2025| 15:28 ANAND SWEETS AND SAVOURBANGALORE C 2,250.00
//
// Newer: DD/MM/YYYY [HH:MM:SS] DESCRIPTION AMOUNT [C/D | Cr]
//
//	02/07/2025 10:26:34 NETBANKING TRANSFER (Ref# ...) 45,741.62 Cr
//
// C marks a charge (debit) and D a refund (credit); the newer layout can
// also flag a credit with a "Cr" suffix on the amount.
var hdfc = &Descriptor{
	Bank:       models.BankHDFC,
	Name:       "HDFC Bank",
	BlockStart: regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`),
	Patterns: []FieldPattern{
		{
			Expr: regexp.MustCompile(`^(?P<date>\d{2}/\d{2}/\d{4})\|\s*\d{2}:\d{2}\s+(?P<desc>.+?)\s+(?P<marker>[CD])\s+(?P<amount>[\d,]+\.\d{2})\s*$`),
			DescStrip: []*regexp.Regexp{
				regexp.MustCompile(`\s*\+\s*\d+$`), // reference counters: "... + 2"
			},
		},
		{
			Expr: regexp.MustCompile(`^(?P<date>\d{2}/\d{2}/\d{4})(?:\s+\d{2}:\d{2}:\d{2})?\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})(?:\s+(?P<suffix>Cr))?(?:\s+(?P<marker>[CD]))?\s*$`),
			// Only the newer layout carries trailing reward points; an older-
			// layout description ending in digits must survive intact.
			DescStrip: []*regexp.Regexp{
				regexp.MustCompile(`\s+-?\d+$`),
			},
		},
	},
	Fallback:    regexp.MustCompile(`^(?P<date>\d{2}/\d{2}/\d{4})(?:\|?\s*\d{2}:\d{2}(?::\d{2})?)?\s+(?P<desc>.+?)\s+(?P<amount>\S+)(?:\s+(?P<marker>\S{1,2}))?\s*$`),
	DateLayouts: []string{"02/01/2006"},
	Markers: map[string]models.TransactionType{
		"C": models.TypeDebit,
		"D": models.TypeCredit,
	},
	SuffixMarkers: map[string]models.TransactionType{
		"CR": models.TypeCredit,
	},
	FilePrefix:    "HDFC",
	ContentTokens: []string{"HDFC Bank", "HDFC BANK", "hdfcbank"},
}

// SBI Card statements: DD Mon YY DESCRIPTION AMOUNT MARKER where the marker
// is M or D for a debit and C for a credit.
//
//	13 Feb 26 FP EMI 05/06(EXCL TAX 49.73) 10,569.35 M
var sbi = &Descriptor{
	Bank:       models.BankSBI,
	Name:       "SBI Card",
	BlockStart: regexp.MustCompile(`^\d{2}\s+\w{3}\s+\d{2}\b`),
	Patterns: []FieldPattern{
		{Expr: regexp.MustCompile(`^(?P<date>\d{2}\s+\w{3}\s+\d{2})\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})\s+(?P<marker>[MDC])\s*$`)},
	},
	Fallback:    regexp.MustCompile(`^(?P<date>\d{2}\s+\w{3}\s+\d{2})\s+(?P<desc>.+?)\s+(?P<amount>\S+)(?:\s+(?P<marker>\S{1,2}))?\s*$`),
	DateLayouts: []string{"02 Jan 06"},
	Markers: map[string]models.TransactionType{
		"M": models.TypeDebit,
		"D": models.TypeDebit,
		"C": models.TypeCredit,
	},
	FilePrefix:    "SBI",
	ContentTokens: []string{"SBI Card", "SBICARD", "sbicard.com"},
}

// IDFC First Bank statements use CR/DR markers and two date layouts.
//
//	31 Aug 24 Innovative Retail Concept, Bangalore 3,780.41 DR
//	28/06/2024 ADISHWAR INDIA LIMITED, BANGALORE 4,248.00 DR
var idfc = &Descriptor{
	Bank:       models.BankIDFC,
	Name:       "IDFC First Bank",
	BlockStart: regexp.MustCompile(`^(?:\d{2}\s+\w{3}\s+\d{2}\b|\d{2}/\d{2}/\d{4})`),
	Patterns: []FieldPattern{
		{Expr: regexp.MustCompile(`^(?P<date>\d{2}\s+\w{3}\s+\d{2})\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})\s+(?P<marker>[CcDd][Rr])\s*$`)},
		{Expr: regexp.MustCompile(`^(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})\s+(?P<marker>[CcDd][Rr])\s*$`)},
	},
	Fallback:    regexp.MustCompile(`^(?P<date>\d{2}\s+\w{3}\s+\d{2}|\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>\S+)(?:\s+(?P<marker>\S{1,2}))?\s*$`),
	DateLayouts: []string{"02 Jan 06", "02/01/2006"},
	Markers: map[string]models.TransactionType{
		"DR": models.TypeDebit,
		"CR": models.TypeCredit,
	},
	FilePrefix:    "IDFC",
	ContentTokens: []string{"IDFC FIRST", "IDFC First Bank", "idfcfirstbank"},
}

// Lookup returns the descriptor for the given bank. The switch is exhaustive
// over the supported banks; adding a bank means adding a descriptor here and
// a constant in models.
func Lookup(bank models.Bank) (*Descriptor, error) {
	switch bank {
	case models.BankHDFC:
		return hdfc, nil
	case models.BankSBI:
		return sbi, nil
	case models.BankIDFC:
		return idfc, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, bank)
	}
}

// All returns every registered descriptor in registration order.
func All() []*Descriptor {
	return []*Descriptor{hdfc, sbi, idfc}
}

// Detect infers the bank from the statement filename convention
// {BANK}_{DATE}_{name}, falling back to bank-specific tokens in the
// extracted text.
func Detect(filename, text string) (models.Bank, error) {
	base := strings.ToUpper(filepath.Base(filename))
	for _, d := range All() {
		if strings.HasPrefix(base, d.FilePrefix+"_") {
			return d.Bank, nil
		}
	}

	lower := strings.ToLower(text)
	for _, d := range All() {
		for _, token := range d.ContentTokens {
			if strings.Contains(lower, strings.ToLower(token)) {
				return d.Bank, nil
			}
		}
	}

	return "", fmt.Errorf("%w: could not detect bank from %q or statement content", ErrUnknownBank, filepath.Base(filename))
}
