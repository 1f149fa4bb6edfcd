package scan

import (
	"strings"

	"github.com/statement-tools/cba-pdf-to-csv/internal/money"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// cardInterestPrefix starts the one record the card layout prints without a
// date; it settles on the statement's closing date.
const cardInterestPrefix = "Interest charged on "

var cardTrailers = []string{
	"How to pay We’re here to help",
	"Please check your transactions listed on this statement and report any discrepancy to the Bank before the payment due date.",
}

// Card reads the three-column credit-card statement layout: Date,
// Transaction Details, Amount (A$). The amount prints on the record's first
// row; the remaining rows only continue the description.
var Card = &Format{
	Name:          "card",
	Columns:       3,
	Header:        []string{"Date", "Transaction Details", "Amount (A$)"},
	Trailers:      cardTrailers,
	StartPrefixes: []string{cardInterestPrefix},
	ValueColumn:   2,
	BalanceColumn: -1,
	TerminalFirst: true,
	Convert:       convertCard,
}

func convertCard(raw Raw) (types.Transaction, error) {
	txn := types.Transaction{Description: raw.Description}
	if !strings.HasPrefix(raw.Description, cardInterestPrefix) {
		date, err := types.ParsePartialDate(raw.Date.String)
		if err != nil {
			return types.Transaction{}, err
		}
		txn.Date = &date
	}

	// Card statements print charges positive and payments with a trailing
	// minus; negate into the sign applied to the running balance.
	v, err := money.Parse(raw.Terminal.Cell(2).String, money.Options{AllowNegative: true, NegativeTrailing: true})
	if err != nil {
		return types.Transaction{}, err
	}
	v = v.Neg()
	txn.Amount = &v
	return txn, nil
}
