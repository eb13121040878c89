package models

import "github.com/shopspring/decimal"

// Bank identifies a supported statement format.
type Bank string

const (
	BankHDFC Bank = "hdfc"
	BankSBI  Bank = "sbi"
	BankIDFC Bank = "idfc"
)

// Banks lists every supported bank in registration order.
func Banks() []Bank {
	return []Bank{BankHDFC, BankSBI, BankIDFC}
}

// TransactionType is the direction of a transaction. Amounts are always
// positive; direction is carried here.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// ExpenseRecord is a single parsed statement transaction. Records are built
// once by the parser and never mutated afterwards.
type ExpenseRecord struct {
	Date        string          `json:"date" csv:"date"` // DD/MM/YYYY
	Description string          `json:"description" csv:"description"`
	Amount      decimal.Decimal `json:"amount" csv:"amount"`
	Type        TransactionType `json:"transaction_type" csv:"transaction_type"`
	Bank        Bank            `json:"bank" csv:"bank"`
	Category    string          `json:"category" csv:"category"`
}

// RejectReason classifies why a candidate block was dropped.
type RejectReason string

const (
	ReasonNoFieldMatch RejectReason = "no_field_match"
	ReasonBadDate      RejectReason = "bad_date"
	ReasonBadAmount    RejectReason = "bad_amount"
	ReasonBadMarker    RejectReason = "unrecognized_marker"
)

// Diagnostics summarizes one statement parse so parsing quality can be
// audited without aborting a run.
type Diagnostics struct {
	BlocksSeen int                  `json:"blocksSeen"`
	Matched    int                  `json:"matched"`
	Rejected   int                  `json:"rejected"`
	Reasons    map[RejectReason]int `json:"reasons,omitempty"`
}

// Reject counts one dropped block under the given reason.
func (d *Diagnostics) Reject(reason RejectReason) {
	if d.Reasons == nil {
		d.Reasons = make(map[RejectReason]int)
	}
	d.Reasons[reason]++
	d.Rejected++
}
