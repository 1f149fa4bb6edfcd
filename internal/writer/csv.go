// Package writer emits reconciled transactions in the tool's CSV layout.
package writer

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/statement-tools/cba-pdf-to-csv/internal/money"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// WriteCSV writes one row per transaction: ISO-8601 date, the description
// with embedded newlines joined by spaces, the signed amount, and the
// reconciled balance. Records that move no money leave the amount empty.
// Decimals render exactly as computed, trailing zeros included, and no
// header row is written.
func WriteCSV(w io.Writer, txns []types.DatedTransaction) error {
	cw := csv.NewWriter(w)
	for _, txn := range txns {
		record := []string{
			txn.Date.Format("2006-01-02"),
			strings.ReplaceAll(txn.Description, "\n", " "),
			"",
			"",
		}
		if txn.Amount != nil {
			record[2] = money.Text(*txn.Amount)
		}
		if txn.Balance != nil {
			record[3] = money.Text(*txn.Balance)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
