// Package reconcile dates reconstructed statement records and proves the
// statement's arithmetic: every amount applied in order must reproduce every
// printed balance exactly, ending on the declared closing balance.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// Context carries the document-level reconciliation inputs, established
// once per statement and never mutated. A zero OpeningYear and nil balances
// mean the statement embeds them as marker records in the table itself.
type Context struct {
	OpeningYear    int
	OpeningBalance *decimal.Decimal
	ClosingBalance *decimal.Decimal
	ClosingDate    *types.PartialDate
}

// Reconcile resolves full dates and then validates balance continuity,
// returning the completed transactions in statement order.
func Reconcile(txns []types.Transaction, ctx Context) ([]types.DatedTransaction, error) {
	dated, err := ResolveDates(txns, ctx)
	if err != nil {
		return nil, err
	}
	return ValidateBalances(dated, ctx)
}
