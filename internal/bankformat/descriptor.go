// Package bankformat holds the static per-bank parsing descriptors.
// Descriptors are read-only configuration: they are built once at package
// init and never mutated, so they are safe to share across concurrent parses.
package bankformat

import (
	"regexp"

	"github.com/expensetrending/expensetrend/internal/models"
)

// FieldPattern is one strict extraction pattern together with the
// description cleanup rules that belong to that layout. Expr must expose
// named groups: date, desc, amount and, where the bank uses them, marker and
// suffix. DescStrip patterns are removed from the matched description
// (reward points, trailing reference counters); layouts carry different
// trailing junk, so cleanup is per-pattern, not per-bank.
type FieldPattern struct {
	Expr      *regexp.Regexp
	DescStrip []*regexp.Regexp
}

// Descriptor defines how one bank's statement text is segmented and matched.
//
// Marker vocabularies are deliberately per-descriptor: the same letter can
// carry opposite meanings in different banks (HDFC uses C for a charge,
// SBI uses C for a credit), so there is no shared marker table.
type Descriptor struct {
	Bank models.Bank
	Name string

	// BlockStart marks the beginning of a candidate transaction block.
	// Lines not matching it are either continuations of the current block
	// or pre-table noise.
	BlockStart *regexp.Regexp

	// Patterns are the strict field-extraction patterns, tried in order.
	Patterns []FieldPattern

	// Fallback is a loose pattern applied when no strict pattern matches.
	// It captures a date-shaped line with arbitrary amount/marker tokens so
	// the normalizer can report the precise rejection reason (bad amount vs
	// unrecognized marker) instead of a generic non-match.
	Fallback *regexp.Regexp

	// DateLayouts are the time.Parse layouts accepted for this bank's
	// date token, tried in order.
	DateLayouts []string

	// Markers maps the explicit type-marker token (uppercased) to a
	// transaction type. A lookup miss is a rejection, never a default.
	Markers map[string]models.TransactionType

	// SuffixMarkers maps marker tokens that ride on the amount field itself
	// (e.g. HDFC's trailing "Cr"). The explicit marker field, when present,
	// takes precedence over a suffix marker.
	SuffixMarkers map[string]models.TransactionType

	// FilePrefix is the uppercase filename prefix used by the statement
	// download convention {BANK}_{DATE}_{name}.
	FilePrefix string

	// ContentTokens identify this bank inside extracted statement text.
	ContentTokens []string
}
