package bankformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensetrending/expensetrend/internal/models"
)

// Every supported bank must resolve to a structurally complete descriptor:
// a missing pattern rule or marker vocabulary would silently drop lines.
func TestLookup_EveryBankComplete(t *testing.T) {
	for _, bank := range models.Banks() {
		d, err := Lookup(bank)
		require.NoError(t, err, "bank %s", bank)

		assert.Equal(t, bank, d.Bank)
		assert.NotEmpty(t, d.Name)
		assert.NotNil(t, d.BlockStart)
		assert.NotEmpty(t, d.Patterns)
		assert.NotNil(t, d.Fallback)
		assert.NotEmpty(t, d.DateLayouts)
		assert.NotEmpty(t, d.Markers)
		assert.NotEmpty(t, d.FilePrefix)
		assert.NotEmpty(t, d.ContentTokens)
	}
}

func TestLookup_UnknownBank(t *testing.T) {
	_, err := Lookup(models.Bank("axis"))
	assert.ErrorIs(t, err, ErrUnknownBank)
}

// Marker vocabularies are per-descriptor: C means a charge for HDFC and a
// credit for SBI.
func TestMarkerVocabulariesAreIndependent(t *testing.T) {
	hdfc, err := Lookup(models.BankHDFC)
	require.NoError(t, err)
	sbi, err := Lookup(models.BankSBI)
	require.NoError(t, err)

	assert.Equal(t, models.TypeDebit, hdfc.Markers["C"])
	assert.Equal(t, models.TypeCredit, sbi.Markers["C"])
}

func TestDetect_FromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     models.Bank
	}{
		{"HDFC_2024-03-20_statement.pdf", models.BankHDFC},
		{"/tmp/downloads/SBI_2026-02-13_card.pdf", models.BankSBI},
		{"idfc_2024-08_statement.pdf", models.BankIDFC},
	}

	for _, tt := range tests {
		got, err := Detect(tt.filename, "")
		require.NoError(t, err, tt.filename)
		assert.Equal(t, tt.want, got, tt.filename)
	}
}

func TestDetect_FromContent(t *testing.T) {
	got, err := Detect("statement.pdf", "Your SBI Card monthly statement\n13 Feb 26 ...")
	require.NoError(t, err)
	assert.Equal(t, models.BankSBI, got)

	got, err = Detect("march.pdf", "HDFC Bank Credit Card Statement")
	require.NoError(t, err)
	assert.Equal(t, models.BankHDFC, got)
}

func TestDetect_Unknown(t *testing.T) {
	_, err := Detect("statement.pdf", "some unrelated text")
	assert.ErrorIs(t, err, ErrUnknownBank)
}
