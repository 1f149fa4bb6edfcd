// Package convert runs a statement conversion end to end: carve the PDF
// into rows, reconstruct the records, and reconcile dates and balances.
package convert

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/statement-tools/cba-pdf-to-csv/internal/extract"
	"github.com/statement-tools/cba-pdf-to-csv/internal/reconcile"
	"github.com/statement-tools/cba-pdf-to-csv/internal/scan"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// Formats returns the names accepted by Statement.
func Formats() []string {
	return scan.DefaultRegistry().List()
}

// Statement converts the statement PDF at path using the named format,
// returning its transactions in statement order with dates resolved and
// balances reconciled.
func Statement(path, formatName string, logger *log.Logger) ([]types.DatedTransaction, error) {
	format, ok := scan.DefaultRegistry().Get(formatName)
	if !ok {
		return nil, fmt.Errorf("unknown format %q, available: %v", formatName, Formats())
	}
	layout, ok := extract.Layouts[formatName]
	if !ok {
		return nil, fmt.Errorf("no extraction layout for format %q", formatName)
	}

	doc, err := extract.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	logger.Debug("Opened statement", "path", path, "format", formatName, "pages", doc.NumPages())

	var ctx reconcile.Context
	if layout.Period != nil && layout.Summary != nil {
		periodRows, err := doc.Table(1, *layout.Period)
		if err != nil {
			return nil, err
		}
		summaryRows, err := doc.Table(1, *layout.Summary)
		if err != nil {
			return nil, err
		}
		summary, err := scan.ParseCardSummary(periodRows, summaryRows)
		if err != nil {
			return nil, err
		}
		logger.Debug("Parsed statement summary",
			"year", summary.OpeningYear,
			"opening", summary.Opening,
			"closing", summary.Closing,
			"charges", summary.NewCharges,
			"payments", summary.Payments)
		ctx = summary.Context()
	}

	pages, err := doc.Tables(layout.Transactions)
	if err != nil {
		return nil, err
	}
	return Pages(pages, ctx, format, logger)
}

// Pages runs the row-level pipeline over pre-extracted pages. Callers that
// already hold tabular rows can skip the PDF entirely.
func Pages(pages [][]types.Row, ctx reconcile.Context, format *scan.Format, logger *log.Logger) ([]types.DatedTransaction, error) {
	txns, err := scan.New(format).Scan(pages)
	if err != nil {
		return nil, err
	}
	logger.Debug("Reconstructed records", "format", format.Name, "count", len(txns))

	out, err := reconcile.Reconcile(txns, ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Reconciled transactions", "count", len(out))
	return out, nil
}
