package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Marker classifies the balance pseudo-records some statement layouts embed
// in the transaction table itself.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerOpening
	MarkerClosing
)

// Transaction is a reconstructed statement record before date resolution.
// Amounts are signed so that adding them to a running balance reproduces
// the statement: debits negative, credits positive. Amount is nil for
// records that move no money; Balance is nil when the layout prints no
// balance on the row.
type Transaction struct {
	Date        *PartialDate
	Description string
	Amount      *decimal.Decimal
	Balance     *decimal.Decimal
	Marker      Marker
	MarkerYear  int
}

// DatedTransaction is a transaction with its full date resolved.
type DatedTransaction struct {
	Date        time.Time
	Description string
	Amount      *decimal.Decimal
	Balance     *decimal.Decimal
	Marker      Marker
}
