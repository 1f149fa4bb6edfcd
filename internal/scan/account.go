package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/statement-tools/cba-pdf-to-csv/internal/money"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

const (
	accountTrailer = "Opening balance - Total debits + Total credits = Closing balance"

	openingMarkerSuffix = " OPENING BALANCE"
	closingMarkerSuffix = " CLOSING BALANCE"
)

// balanceOnlySuffixes mark records that carry a balance but no debit or
// credit. The opening entry requires its year prefix; the closing entry
// matches with or without one.
var balanceOnlySuffixes = []string{" OPENING BALANCE", "CLOSING BALANCE"}

// accountSpecialLines are the records that span a known number of rows and
// close without a balance, keyed by their first description line.
var accountSpecialLines = map[string]int{
	"CREDIT INTEREST EARNED on this account":   2,
	"BONUS INTEREST EARNED on this account to": 2,
}

// Account reads the five-column account statement layout: Date,
// Transaction, Debit, Credit, Balance. Every row of a record carries its
// description; debit, credit and balance print on the record's last row.
var Account = &Format{
	Name:                  "account",
	Columns:               5,
	Header:                []string{"Date", "Transaction", "Debit", "Credit", "Balance"},
	Trailers:              []string{accountTrailer},
	TrailerFirstCellEmpty: true,
	ValueColumn:           -1,
	BalanceColumn:         4,
	ValueColumns:          []int{2, 3, 4},
	SpecialLines:          accountSpecialLines,
	IsArtifact:            accountArtifact,
	Fixup:                 accountFixup,
	Convert:               convertAccount,
}

// accountArtifact reports the carried-balance rows older statements print
// around page breaks.
func accountArtifact(row types.Row) bool {
	carried := true
	var joined strings.Builder
	for _, c := range row[2:] {
		if c.Empty() {
			carried = false
			break
		}
		joined.WriteString(c.String)
	}
	if carried && strings.HasPrefix(strings.ReplaceAll(joined.String(), " ", ""), "BALANCECARRIEDFORWARD") {
		return true
	}
	desc := row.Cell(descColumn)
	return desc.Valid && strings.HasPrefix(desc.String, "BALANCE BROUGHT FORWARD")
}

// accountFixup re-attaches the year digit that drifts into the date column
// on older statements' balance rows, where "01 Jul 2" / "012 OPENING
// BALANCE" should read "01 Jul" / "2012 OPENING BALANCE".
func accountFixup(row types.Row) types.Row {
	date, desc := row.Cell(dateColumn), row.Cell(descColumn)
	if date.Empty() || desc.Empty() || len(date.String) != 8 || !strings.HasSuffix(date.String, "2") {
		return row
	}
	if !hasBalanceOnlySuffix(desc.String) {
		return row
	}
	fixed := make(types.Row, len(row))
	copy(fixed, row)
	fixed[dateColumn] = types.NewCell(date.String[:6])
	fixed[descColumn] = types.NewCell("2" + desc.String)
	return fixed
}

func hasBalanceOnlySuffix(desc string) bool {
	for _, suffix := range balanceOnlySuffixes {
		if strings.HasSuffix(desc, suffix) {
			return true
		}
	}
	return false
}

func hasSpecialLinePrefix(desc string) bool {
	for prefix := range accountSpecialLines {
		if strings.HasPrefix(desc, prefix) {
			return true
		}
	}
	return false
}

// isCreditArtifact reports the one-character residue the extractor carves
// off the credit column: a "-", "$" or digit.
func isCreditArtifact(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return c == '-' || c == '$' || (c >= '0' && c <= '9')
}

func convertAccount(raw Raw) (types.Transaction, error) {
	if raw.Date.Empty() {
		return types.Transaction{}, fmt.Errorf("%w: record %q has no date", types.ErrFormat, raw.Description)
	}
	date, err := types.ParsePartialDate(raw.Date.String)
	if err != nil {
		return types.Transaction{}, err
	}
	txn := types.Transaction{Date: &date, Description: raw.Description}

	debit := raw.Terminal.Cell(2)
	credit := raw.Terminal.Cell(3)
	balance := raw.Terminal.Cell(4)

	switch {
	case hasBalanceOnlySuffix(raw.Description):
		if !debit.Empty() || !credit.Empty() {
			return types.Transaction{}, fmt.Errorf("%w: balance record %s carries debit or credit", types.ErrFormat, raw.Terminal)
		}
	case hasSpecialLinePrefix(raw.Description):
		if !debit.Empty() || credit.Empty() || !isCreditArtifact(credit.String) || !balance.Empty() {
			return types.Transaction{}, fmt.Errorf("%w: unexpected values on record %s", types.ErrFormat, raw.Terminal)
		}
	case !debit.Empty():
		if credit.Empty() || !isCreditArtifact(credit.String) {
			return types.Transaction{}, fmt.Errorf("%w: debit record %s lacks the credit column artifact", types.ErrFormat, raw.Terminal)
		}
		v, err := money.Parse(debit.String, money.Options{})
		if err != nil {
			return types.Transaction{}, err
		}
		v = v.Neg()
		txn.Amount = &v
	case !credit.Empty():
		if len(credit.String) < 1 || !isCreditArtifact(credit.String[:1]) {
			return types.Transaction{}, fmt.Errorf("%w: credit record %s lacks its artifact prefix", types.ErrFormat, raw.Terminal)
		}
		v, err := money.Parse(credit.String[1:], money.Options{})
		if err != nil {
			return types.Transaction{}, err
		}
		txn.Amount = &v
	default:
		return types.Transaction{}, fmt.Errorf("%w: record %s has neither debit nor credit", types.ErrFormat, raw.Terminal)
	}

	switch {
	case balance.Empty():
		if txn.Amount != nil {
			return types.Transaction{}, fmt.Errorf("%w: record %s has a value but no balance", types.ErrFormat, raw.Terminal)
		}
	case balance.String == "Nil" || balance.String == "$0.00":
		zero := decimal.New(0, -2)
		txn.Balance = &zero
	default:
		b, err := money.Parse(balance.String, money.Options{LeadingDollar: true, CrDr: true})
		if err != nil {
			return types.Transaction{}, err
		}
		txn.Balance = &b
	}

	switch {
	case strings.HasSuffix(raw.Description, openingMarkerSuffix):
		txn.Marker = types.MarkerOpening
		txn.MarkerYear, err = markerYear(raw.Description, openingMarkerSuffix)
	case strings.HasSuffix(raw.Description, closingMarkerSuffix):
		txn.Marker = types.MarkerClosing
		txn.MarkerYear, err = markerYear(raw.Description, closingMarkerSuffix)
	}
	if err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}

// markerYear reads the year prefix off an opening or closing balance
// record's description.
func markerYear(desc, suffix string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSuffix(desc, suffix))
	if err != nil {
		return 0, fmt.Errorf("%w: balance record %q has no year prefix", types.ErrDate, desc)
	}
	return year, nil
}
