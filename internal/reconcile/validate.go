package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/statement-tools/cba-pdf-to-csv/internal/money"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// ValidateBalances applies each amount to a running balance and checks the
// result against every balance the statement prints, failing on the first
// disagreement. Records that carry an amount but no printed balance gain
// the computed one, so the output always exposes the reconciled balance per
// transaction. The running balance must end exactly on the declared closing
// balance; when the statement declares it through a closing marker record,
// that record must actually appear.
func ValidateBalances(txns []types.DatedTransaction, ctx Context) ([]types.DatedTransaction, error) {
	var running decimal.Decimal
	haveRunning := false
	if ctx.OpeningBalance != nil {
		running, haveRunning = *ctx.OpeningBalance, true
	}

	closingSeen := false
	out := make([]types.DatedTransaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Marker == types.MarkerOpening {
			if txn.Balance == nil {
				return nil, fmt.Errorf("%w: opening balance record %q has no balance", types.ErrFormat, txn.Description)
			}
			running, haveRunning = *txn.Balance, true
			out = append(out, txn)
			continue
		}
		if !haveRunning {
			return nil, fmt.Errorf("%w: record %q before any opening balance", types.ErrFormat, txn.Description)
		}

		if txn.Amount != nil {
			running = running.Add(*txn.Amount)
		}
		if txn.Balance != nil && !txn.Balance.Equal(running) {
			return nil, fmt.Errorf("%w: running balance %s != statement balance %s at %q",
				types.ErrBalanceMismatch, money.Text(running), money.Text(*txn.Balance), txn.Description)
		}
		if txn.Marker == types.MarkerClosing {
			if txn.Balance == nil {
				return nil, fmt.Errorf("%w: closing balance record %q has no balance", types.ErrBalanceMismatch, txn.Description)
			}
			closingSeen = true
		}
		if txn.Balance == nil && txn.Amount != nil {
			balance := running
			txn.Balance = &balance
		}
		out = append(out, txn)
	}

	if ctx.ClosingBalance != nil {
		if !running.Equal(*ctx.ClosingBalance) {
			return nil, fmt.Errorf("%w: running balance %s != closing balance %s",
				types.ErrBalanceMismatch, money.Text(running), money.Text(*ctx.ClosingBalance))
		}
	} else if !closingSeen {
		return nil, fmt.Errorf("%w: no closing balance record found", types.ErrBalanceMismatch)
	}
	return out, nil
}
