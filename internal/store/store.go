// Package store persists parsed expense records in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"

	"github.com/expensetrending/expensetrend/internal/models"
)

// Store wraps the SQLite database holding expense records.
type Store struct {
	db *sql.DB
}

// migrations returns the schema statements. SQLite executes one statement
// at a time.
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS expenses (
			id          TEXT PRIMARY KEY,
			txn_date    TEXT NOT NULL,
			description TEXT NOT NULL,
			amount      TEXT NOT NULL,
			txn_type    TEXT NOT NULL,
			bank        TEXT NOT NULL,
			category    TEXT NOT NULL,
			created_at  TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_bank ON expenses(bank)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_type ON expenses(txn_type)`,
	}
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	// SQLite allows a single writer; serialize access through one conn.
	db.SetMaxOpenConns(1)

	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StoredExpense is an ExpenseRecord with its storage identity.
type StoredExpense struct {
	ID string `json:"id"`
	models.ExpenseRecord
}

// SaveExpenses inserts records in one transaction and returns how many were
// written.
func (s *Store) SaveExpenses(records []models.ExpenseRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO expenses (id, txn_date, description, amount, txn_type, bank, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		if _, err := stmt.Exec(uuid.NewString(), rec.Date, rec.Description,
			rec.Amount.String(), string(rec.Type), string(rec.Bank), rec.Category, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Flush deletes every stored expense and returns the number removed.
func (s *Store) Flush() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM expenses`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of stored expenses.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM expenses`).Scan(&n)
	return n, err
}

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Bank     models.Bank
	Category string
	Type     models.TransactionType
	Limit    int
}

// List returns stored expenses in insertion order, newest last.
func (s *Store) List(f Filter) ([]StoredExpense, error) {
	query := `SELECT id, txn_date, description, amount, txn_type, bank, category FROM expenses`
	var conds []string
	var args []any

	if f.Bank != "" {
		conds = append(conds, "bank = ?")
		args = append(args, string(f.Bank))
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Type != "" {
		conds = append(conds, "txn_type = ?")
		args = append(args, string(f.Type))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rowid"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredExpense
	for rows.Next() {
		var e StoredExpense
		var amount, txnType, bank string
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &amount, &txnType, &bank, &e.Category); err != nil {
			return nil, err
		}
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q for expense %s: %w", amount, e.ID, err)
		}
		e.Type = models.TransactionType(txnType)
		e.Bank = models.Bank(bank)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CategoryTotal aggregates spend for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// CategoryBreakdown sums debit amounts per category. Amounts are stored as
// text to keep them exact, so the aggregation happens here rather than in
// SQL.
func (s *Store) CategoryBreakdown() ([]CategoryTotal, error) {
	expenses, err := s.List(Filter{Type: models.TypeDebit})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*CategoryTotal)
	var order []string
	for _, e := range expenses {
		ct, ok := totals[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category}
			totals[e.Category] = ct
			order = append(order, e.Category)
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, *totals[cat])
	}
	// Largest spend first.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out, nil
}

// MonthTotal aggregates debit spend for one calendar month.
type MonthTotal struct {
	Month string          `json:"month"` // MM/YYYY
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// MonthlyTrend sums debit amounts per month of the canonical DD/MM/YYYY
// transaction date.
func (s *Store) MonthlyTrend() ([]MonthTotal, error) {
	expenses, err := s.List(Filter{Type: models.TypeDebit})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*MonthTotal)
	var order []string
	for _, e := range expenses {
		if len(e.Date) != 10 {
			continue
		}
		month := e.Date[3:] // DD/MM/YYYY -> MM/YYYY
		mt, ok := totals[month]
		if !ok {
			mt = &MonthTotal{Month: month}
			totals[month] = mt
			order = append(order, month)
		}
		mt.Total = mt.Total.Add(e.Amount)
		mt.Count++
	}

	out := make([]MonthTotal, 0, len(order))
	for _, month := range order {
		out = append(out, *totals[month])
	}
	return out, nil
}
