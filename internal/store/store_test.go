package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensetrending/expensetrend/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(date, desc, amount string, typ models.TransactionType, bank models.Bank, category string) models.ExpenseRecord {
	return models.ExpenseRecord{
		Date:        date,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Type:        typ,
		Bank:        bank,
		Category:    category,
	}
}

func TestStore_SaveAndList(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveExpenses([]models.ExpenseRecord{
		record("15/03/2024", "AMAZON RETAIL", "1250.00", models.TypeDebit, models.BankHDFC, "shopping"),
		record("16/03/2024", "SWIGGY ORDER", "350.50", models.TypeDebit, models.BankHDFC, "food"),
		record("24/01/2026", "NEFT CREDIT", "13142.00", models.TypeCredit, models.BankSBI, "other"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, saved)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := s.List(Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "AMAZON RETAIL", all[0].Description)
	assert.True(t, all[0].Amount.Equal(decimal.RequireFromString("1250.00")))
	assert.NotEmpty(t, all[0].ID)
}

func TestStore_ListFilters(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveExpenses([]models.ExpenseRecord{
		record("15/03/2024", "AMAZON RETAIL", "1250.00", models.TypeDebit, models.BankHDFC, "shopping"),
		record("16/03/2024", "SWIGGY ORDER", "350.50", models.TypeDebit, models.BankSBI, "food"),
		record("17/03/2024", "REFUND", "99.00", models.TypeCredit, models.BankHDFC, "other"),
	})
	require.NoError(t, err)

	hdfc, err := s.List(Filter{Bank: models.BankHDFC})
	require.NoError(t, err)
	assert.Len(t, hdfc, 2)

	food, err := s.List(Filter{Category: "food"})
	require.NoError(t, err)
	require.Len(t, food, 1)
	assert.Equal(t, "SWIGGY ORDER", food[0].Description)

	credits, err := s.List(Filter{Type: models.TypeCredit})
	require.NoError(t, err)
	assert.Len(t, credits, 1)

	limited, err := s.List(Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_Flush(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveExpenses([]models.ExpenseRecord{
		record("15/03/2024", "A", "1.00", models.TypeDebit, models.BankHDFC, "other"),
		record("16/03/2024", "B", "2.00", models.TypeDebit, models.BankHDFC, "other"),
	})
	require.NoError(t, err)

	deleted, err := s.Flush()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_CategoryBreakdown(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveExpenses([]models.ExpenseRecord{
		record("15/03/2024", "AMAZON", "1000.00", models.TypeDebit, models.BankHDFC, "shopping"),
		record("16/03/2024", "FLIPKART", "500.00", models.TypeDebit, models.BankHDFC, "shopping"),
		record("17/03/2024", "SWIGGY", "200.00", models.TypeDebit, models.BankHDFC, "food"),
		// Credits are excluded from spend aggregation.
		record("18/03/2024", "REFUND", "9999.00", models.TypeCredit, models.BankHDFC, "shopping"),
	})
	require.NoError(t, err)

	breakdown, err := s.CategoryBreakdown()
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	assert.Equal(t, "shopping", breakdown[0].Category)
	assert.True(t, breakdown[0].Total.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, 2, breakdown[0].Count)
	assert.Equal(t, "food", breakdown[1].Category)
}

func TestStore_MonthlyTrend(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveExpenses([]models.ExpenseRecord{
		record("15/03/2024", "A", "100.00", models.TypeDebit, models.BankHDFC, "other"),
		record("20/03/2024", "B", "50.00", models.TypeDebit, models.BankHDFC, "other"),
		record("01/04/2024", "C", "25.00", models.TypeDebit, models.BankHDFC, "other"),
	})
	require.NoError(t, err)

	trend, err := s.MonthlyTrend()
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, "03/2024", trend[0].Month)
	assert.True(t, trend[0].Total.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, "04/2024", trend[1].Month)
}
