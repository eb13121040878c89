package parser

import (
	"regexp"
	"strings"

	"github.com/expensetrending/expensetrend/internal/bankformat"
)

// Block is a contiguous run of statement text hypothesized to hold one
// transaction entry, prior to any validation.
type Block struct {
	Index int    // position within the statement, in document order
	Text  string // whitespace-collapsed single-line text
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Segment splits raw statement text into candidate blocks using the bank's
// block-start rule. A block begins at a line matching the rule and absorbs
// following lines until the next block start: extraction frequently wraps a
// long description onto the next line. Headers, footers and summary rows
// never open a block; an input with no transaction-shaped content yields
// zero blocks, which is a valid result.
func Segment(text string, d *bankformat.Descriptor) []Block {
	var blocks []Block
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		joined := strings.TrimSpace(whitespacePattern.ReplaceAllString(strings.Join(current, " "), " "))
		if joined != "" {
			blocks = append(blocks, Block{Index: len(blocks), Text: joined})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if d.BlockStart.MatchString(line) {
			flush()
			current = append(current, line)
			continue
		}

		// Continuation of the current block, unless it is table noise.
		if len(current) > 0 && !isNoiseLine(line) {
			current = append(current, line)
		}
	}
	flush()

	return blocks
}

// isNoiseLine filters running balances, totals and page furniture that would
// otherwise be glued onto the preceding transaction's description.
func isNoiseLine(line string) bool {
	lower := strings.ToLower(line)
	noise := []string{
		"opening balance", "closing balance", "total due", "minimum amount",
		"payment due", "credit limit", "available limit", "statement period",
		"reward points", "gst", "page ", "continued",
	}
	for _, kw := range noise {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
