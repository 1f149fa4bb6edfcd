package reconcile

import (
	"fmt"

	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// Year inference bounds. A resolved year outside this range means the
// statement was misread, not that time ran backwards.
const (
	minYear = 2000
	maxYear = 2100
)

// ResolveDates assigns a full date to every record. Statements print the
// year once — in the opening marker record or the statement context — and
// print every transaction date as day and month only; the year advances
// exactly when a (month, day) pair sorts below its predecessor. No calendar
// arithmetic is involved beyond checking the finished date really exists.
func ResolveDates(txns []types.Transaction, ctx Context) ([]types.DatedTransaction, error) {
	year := ctx.OpeningYear
	haveYear := year != 0

	var last types.PartialDate
	haveLast := false

	out := make([]types.DatedTransaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Marker == types.MarkerOpening {
			if haveYear {
				return nil, fmt.Errorf("%w: unexpected opening balance record %q", types.ErrFormat, txn.Description)
			}
			if txn.Amount != nil {
				return nil, fmt.Errorf("%w: opening balance record %q carries a value", types.ErrFormat, txn.Description)
			}
			year = txn.MarkerYear
			if year < minYear || year > maxYear {
				return nil, fmt.Errorf("%w: opening year %d out of range", types.ErrDate, year)
			}
			haveYear = true
		} else if !haveYear {
			return nil, fmt.Errorf("%w: record %q before any opening balance", types.ErrFormat, txn.Description)
		}

		monthDay := txn.Date
		if monthDay == nil {
			if ctx.ClosingDate == nil {
				return nil, fmt.Errorf("%w: record %q has no date", types.ErrDate, txn.Description)
			}
			monthDay = ctx.ClosingDate
		}
		if haveLast && monthDay.Before(last) {
			year++
			if year > maxYear {
				return nil, fmt.Errorf("%w: resolved year %d out of range", types.ErrDate, year)
			}
		}
		last, haveLast = *monthDay, true

		date, err := monthDay.InYear(year)
		if err != nil {
			return nil, err
		}

		if txn.Marker == types.MarkerClosing {
			if txn.Amount != nil {
				return nil, fmt.Errorf("%w: closing balance record %q carries a value", types.ErrFormat, txn.Description)
			}
			if txn.MarkerYear != year {
				return nil, fmt.Errorf("%w: closing balance record year %d does not match resolved year %d", types.ErrDate, txn.MarkerYear, year)
			}
		}

		out = append(out, types.DatedTransaction{
			Date:        date,
			Description: txn.Description,
			Amount:      txn.Amount,
			Balance:     txn.Balance,
			Marker:      txn.Marker,
		})
	}
	return out, nil
}
