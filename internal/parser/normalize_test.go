package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensetrending/expensetrend/internal/bankformat"
	"github.com/expensetrending/expensetrend/internal/models"
)

func TestNormalize_CanonicalDate(t *testing.T) {
	sbi, err := bankformat.Lookup(models.BankSBI)
	require.NoError(t, err)

	rec, err := Normalize(RawFields{Date: "13  Feb 26", Description: "X", Amount: "1.00", Marker: "M"}, sbi)
	require.NoError(t, err)
	assert.Equal(t, "13/02/2026", rec.Date)
}

func TestNormalize_DateRejections(t *testing.T) {
	d := hdfcDescriptor(t)

	tests := []struct {
		name string
		date string
	}{
		{"day out of range", "32/01/2024"},
		{"month out of range", "15/13/2024"},
		{"wrong shape for bank", "15 Mar 24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(RawFields{Date: tt.date, Description: "X", Amount: "1.00", Marker: "C"}, d)
			var rej *RejectError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, models.ReasonBadDate, rej.Reason)
		})
	}
}

func TestNormalize_AmountCleaning(t *testing.T) {
	d := hdfcDescriptor(t)

	tests := []struct {
		in   string
		want string
	}{
		{"1,250.00", "1250.00"},
		{"₹2,499.50", "2499.50"},
		{"Rs. 99.00", "99.00"},
		{"INR 45,741.62", "45741.62"},
	}

	for _, tt := range tests {
		rec, err := Normalize(RawFields{Date: "15/03/2024", Description: "X", Amount: tt.in, Marker: "C"}, d)
		require.NoError(t, err, "amount %q", tt.in)
		assert.Equal(t, tt.want, rec.Amount.StringFixed(2))
	}
}

func TestNormalize_AmountRejections(t *testing.T) {
	d := hdfcDescriptor(t)

	for _, amount := range []string{"N/A", "", "0.00", "-12.00", "12..00"} {
		_, err := Normalize(RawFields{Date: "15/03/2024", Description: "X", Amount: amount, Marker: "C"}, d)
		var rej *RejectError
		require.ErrorAs(t, err, &rej, "amount %q", amount)
		assert.Equal(t, models.ReasonBadAmount, rej.Reason, "amount %q", amount)
	}
}

// When both marker sites carry a recognized token, the explicit marker
// field wins over the amount suffix.
func TestNormalize_MarkerPrecedence(t *testing.T) {
	d := hdfcDescriptor(t)

	rec, err := Normalize(RawFields{Date: "15/03/2024", Description: "X", Amount: "1.00", Marker: "C", Suffix: "Cr"}, d)
	require.NoError(t, err)
	assert.Equal(t, models.TypeDebit, rec.Type)
}

func TestNormalize_SuffixMarkerAlone(t *testing.T) {
	d := hdfcDescriptor(t)

	rec, err := Normalize(RawFields{Date: "15/03/2024", Description: "X", Amount: "1.00", Suffix: "Cr"}, d)
	require.NoError(t, err)
	assert.Equal(t, models.TypeCredit, rec.Type)
}

func TestNormalize_MarkerRejections(t *testing.T) {
	d := hdfcDescriptor(t)

	tests := []struct {
		name string
		raw  RawFields
	}{
		{"unknown letter", RawFields{Marker: "X"}},
		{"no marker at all", RawFields{}},
		{"unknown marker beats known suffix", RawFields{Marker: "Z", Suffix: "Cr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			raw.Date = "15/03/2024"
			raw.Description = "X"
			raw.Amount = "1.00"
			_, err := Normalize(raw, d)
			var rej *RejectError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, models.ReasonBadMarker, rej.Reason)
		})
	}
}

func TestNormalize_DescriptionWhitespace(t *testing.T) {
	d := hdfcDescriptor(t)

	rec, err := Normalize(RawFields{Date: "15/03/2024", Description: "SOME  SPREAD \t OUT  NAME", Amount: "1.00", Marker: "C"}, d)
	require.NoError(t, err)
	assert.Equal(t, "SOME SPREAD OUT NAME", rec.Description)
}
