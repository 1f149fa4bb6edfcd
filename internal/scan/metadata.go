package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/statement-tools/cba-pdf-to-csv/internal/money"
	"github.com/statement-tools/cba-pdf-to-csv/internal/reconcile"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// Card statement metadata lives outside the transaction table: the
// statement period box supplies the opening year, and the balance summary
// box supplies the printed opening and closing balances plus the closing
// date.

const (
	cardOpeningPrefix = "Opening balance at "
	cardClosingPrefix = "Closing balance at "
	cardChargesLabel  = "New transactions and charges"
	cardPaymentsLabel = "Payments/refunds"
)

var cardPeriodLabels = []string{"Statement Period", "Statement period"}

// CardSummary is the card statement's period and balance summary as
// printed: balances are amounts owed, positive when the account is in
// debt. NewCharges and Payments are informational totals the statement
// prints but reconciliation does not consume.
type CardSummary struct {
	OpeningYear int
	Opening     decimal.Decimal
	Closing     decimal.Decimal
	ClosingDate types.PartialDate
	NewCharges  *decimal.Decimal
	Payments    *decimal.Decimal
}

// ParseCardSummary reads the statement period row and the balance summary
// rows extracted from a card statement's first page.
func ParseCardSummary(periodRows, summaryRows []types.Row) (*CardSummary, error) {
	year, err := parsePeriodYear(periodRows)
	if err != nil {
		return nil, err
	}
	summary := &CardSummary{OpeningYear: year}

	var haveOpening, haveClosing bool
	for _, row := range summaryRows {
		label := row.Cell(0)
		if label.Empty() {
			continue
		}
		switch {
		case strings.HasPrefix(label.String, cardOpeningPrefix):
			v, err := summaryAmount(row)
			if err != nil {
				return nil, err
			}
			summary.Opening = v
			haveOpening = true
		case strings.HasPrefix(label.String, cardClosingPrefix):
			v, err := summaryAmount(row)
			if err != nil {
				return nil, err
			}
			date, err := types.ParsePartialDate(label.String[len(cardClosingPrefix):])
			if err != nil {
				return nil, err
			}
			summary.Closing, summary.ClosingDate = v, date
			haveClosing = true
		case strings.HasPrefix(label.String, cardChargesLabel):
			v, err := summaryAmount(row)
			if err != nil {
				return nil, err
			}
			summary.NewCharges = &v
		case strings.HasPrefix(label.String, cardPaymentsLabel):
			v, err := summaryAmount(row)
			if err != nil {
				return nil, err
			}
			summary.Payments = &v
		}
	}
	if !haveOpening || !haveClosing {
		return nil, fmt.Errorf("%w: balance summary is missing its opening or closing balance", types.ErrFormat)
	}
	return summary, nil
}

// Context converts the summary into reconciliation inputs. Printed card
// balances are amounts owed, so they negate into the sign a running balance
// applies.
func (s *CardSummary) Context() reconcile.Context {
	opening := s.Opening.Neg()
	closing := s.Closing.Neg()
	closingDate := s.ClosingDate
	return reconcile.Context{
		OpeningYear:    s.OpeningYear,
		OpeningBalance: &opening,
		ClosingBalance: &closing,
		ClosingDate:    &closingDate,
	}
}

// parsePeriodYear pulls the opening year out of the statement period box,
// whose first row reads like ("Statement Period", "26 Nov 2022 - 25 Dec
// 2022"): the third space-separated token of the value is the year.
func parsePeriodYear(periodRows []types.Row) (int, error) {
	if len(periodRows) == 0 {
		return 0, fmt.Errorf("%w: statement period not found", types.ErrFormat)
	}
	row := periodRows[0]
	label := row.Cell(0)
	if label.Empty() || !isPeriodLabel(label.String) {
		return 0, fmt.Errorf("%w: unexpected statement period row %s", types.ErrFormat, row)
	}
	period := row.Cell(1)
	if period.Empty() {
		return 0, fmt.Errorf("%w: statement period row %s has no value", types.ErrFormat, row)
	}
	parts := strings.Split(period.String, " ")
	if len(parts) < 3 {
		return 0, fmt.Errorf("%w: statement period %q has no year", types.ErrDate, period.String)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("%w: statement period %q has no year", types.ErrDate, period.String)
	}
	if year < 2000 || year > 2100 {
		return 0, fmt.Errorf("%w: statement year %d out of range", types.ErrDate, year)
	}
	return year, nil
}

func isPeriodLabel(s string) bool {
	for _, label := range cardPeriodLabels {
		if s == label {
			return true
		}
	}
	return false
}

func summaryAmount(row types.Row) (decimal.Decimal, error) {
	value := row.Cell(1)
	if value.Empty() {
		return decimal.Decimal{}, fmt.Errorf("%w: summary row %s has no amount", types.ErrFormat, row)
	}
	return money.Parse(value.String, money.Options{LeadingDollar: true, AllowNegative: true})
}
