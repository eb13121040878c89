package parser

import (
	"regexp"
	"strings"

	"github.com/expensetrending/expensetrend/internal/bankformat"
)

// RawFields holds the unvalidated tokens extracted from one block. Marker
// and Suffix are the two possible marker sites; either or both may be empty.
type RawFields struct {
	Date        string
	Description string
	Amount      string
	Marker      string // explicit type-marker field
	Suffix      string // marker attached to the amount (e.g. "Cr")
}

// Match applies the bank's field patterns to a block. Strict patterns are
// tried in descriptor order; if none fit, the loose fallback pattern is
// tried so that a date-shaped line with a malformed amount or marker still
// reaches the normalizer and is rejected with a precise reason. A false
// return means the block has no recognizable field shape at all; missing
// fields are never invented.
//
// The matched pattern's own DescStrip rules are applied here: trailing junk
// like reward points is a property of the layout that matched, so cleanup
// belongs to the pattern, not the bank.
func Match(b Block, d *bankformat.Descriptor) (RawFields, bool) {
	for _, p := range d.Patterns {
		if f, ok := applyPattern(p.Expr, b.Text); ok {
			for _, strip := range p.DescStrip {
				f.Description = strip.ReplaceAllString(f.Description, "")
			}
			f.Description = strings.TrimSpace(f.Description)
			return f, true
		}
	}
	if d.Fallback != nil {
		if f, ok := applyPattern(d.Fallback, b.Text); ok {
			return f, true
		}
	}
	return RawFields{}, false
}

func applyPattern(p *regexp.Regexp, text string) (RawFields, bool) {
	m := p.FindStringSubmatch(text)
	if m == nil {
		return RawFields{}, false
	}

	var f RawFields
	for i, name := range p.SubexpNames() {
		if i >= len(m) {
			break
		}
		switch name {
		case "date":
			f.Date = m[i]
		case "desc":
			f.Description = m[i]
		case "amount":
			f.Amount = m[i]
		case "marker":
			f.Marker = m[i]
		case "suffix":
			f.Suffix = m[i]
		}
	}

	if f.Date == "" || f.Amount == "" {
		return RawFields{}, false
	}
	return f, true
}
