package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expensetrending/expensetrend/internal/bankformat"
	"github.com/expensetrending/expensetrend/internal/models"
)

// canonicalDateLayout is the single output form for all banks: day/month/
// year, zero-padded.
const canonicalDateLayout = "02/01/2006"

// RejectError reports why one block failed normalization. It is non-fatal:
// the parser counts it and moves on.
type RejectError struct {
	Reason models.RejectReason
	Token  string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("line rejected (%s): %q", e.Reason, e.Token)
}

// Normalize converts raw matched tokens into a typed ExpenseRecord.
// Checks run in a fixed order (date, amount, marker) so each rejected block
// tallies exactly one reason.
func Normalize(raw RawFields, d *bankformat.Descriptor) (models.ExpenseRecord, error) {
	date, err := normalizeDate(raw.Date, d.DateLayouts)
	if err != nil {
		return models.ExpenseRecord{}, err
	}

	amount, err := normalizeAmount(raw.Amount)
	if err != nil {
		return models.ExpenseRecord{}, err
	}

	txnType, err := resolveType(raw, d)
	if err != nil {
		return models.ExpenseRecord{}, err
	}

	return models.ExpenseRecord{
		Date:        date,
		Description: normalizeDescription(raw.Description),
		Amount:      amount,
		Type:        txnType,
		Bank:        d.Bank,
	}, nil
}

// normalizeDate parses the bank's native date form and reformats it to the
// canonical layout. Impossible calendar dates fail time.Parse and reject
// the line.
func normalizeDate(token string, layouts []string) (string, error) {
	cleaned := strings.TrimSpace(whitespacePattern.ReplaceAllString(token, " "))
	for _, layout := range layouts {
		t, err := time.Parse(layout, cleaned)
		if err == nil {
			return t.Format(canonicalDateLayout), nil
		}
	}
	return "", &RejectError{Reason: models.ReasonBadDate, Token: token}
}

// normalizeAmount strips grouping separators and currency symbols, then
// parses the residue as a decimal. The result must be strictly positive:
// direction lives in the transaction type, never in the sign.
func normalizeAmount(token string) (decimal.Decimal, error) {
	s := strings.TrimSpace(token)
	for _, sym := range []string{"₹", "Rs.", "Rs", "INR", "£", "$", "€", ",", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}
	if s == "" {
		return decimal.Zero, &RejectError{Reason: models.ReasonBadAmount, Token: token}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil || amount.Sign() <= 0 {
		return decimal.Zero, &RejectError{Reason: models.ReasonBadAmount, Token: token}
	}
	return amount, nil
}

// resolveType looks the marker up in the bank's own vocabulary. The explicit
// marker field takes precedence over an amount-suffix marker; a token
// outside the vocabulary, or no marker at all, rejects the line. The type is
// never defaulted.
func resolveType(raw RawFields, d *bankformat.Descriptor) (models.TransactionType, error) {
	if raw.Marker != "" {
		if t, ok := d.Markers[strings.ToUpper(raw.Marker)]; ok {
			return t, nil
		}
		return "", &RejectError{Reason: models.ReasonBadMarker, Token: raw.Marker}
	}
	if raw.Suffix != "" {
		if t, ok := d.SuffixMarkers[strings.ToUpper(raw.Suffix)]; ok {
			return t, nil
		}
		return "", &RejectError{Reason: models.ReasonBadMarker, Token: raw.Suffix}
	}
	return "", &RejectError{Reason: models.ReasonBadMarker, Token: ""}
}

// normalizeDescription collapses runs of whitespace. Layout-specific strips
// (reward points, reference counters) already happened in Match.
func normalizeDescription(desc string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(desc, " "))
}
