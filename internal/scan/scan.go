// Package scan reconstructs transactions from the table rows of a statement
// page. Statement tables interleave the records of interest with page
// furniture (headers, trailers, carried-balance lines), and a single record
// may span several physical rows; the scanner finds the table on each page,
// accumulates row fragments into whole records, and hands them to the
// format's converter.
package scan

import (
	"fmt"
	"strings"

	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// maxFragments caps how many physical rows one record may span.
const maxFragments = 3

type state int

const (
	seekingHeader state = iota
	inTable
	tableDone
)

// Scanner reconstructs transactions from one statement's table rows. Pages
// scan independently: every page repeats the table header, and no record
// spans a page boundary.
type Scanner struct {
	format *Format
}

// New creates a scanner for the given format.
func New(f *Format) *Scanner {
	return &Scanner{format: f}
}

// Scan consumes all pages and returns the reconstructed transactions in
// statement order.
func (s *Scanner) Scan(pages [][]types.Row) ([]types.Transaction, error) {
	var txns []types.Transaction
	for i, page := range pages {
		out, err := s.ScanPage(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		txns = append(txns, out...)
	}
	return txns, nil
}

// ScanPage reconstructs the transactions of a single page. Rows before the
// table header are discarded; a page without a header yields no
// transactions, which reconciliation later rejects through the missing
// closing balance.
func (s *Scanner) ScanPage(rows []types.Row) ([]types.Transaction, error) {
	p := &pageScan{format: s.format}
	for _, row := range rows {
		if err := p.push(row); err != nil {
			return nil, err
		}
		if p.state == tableDone {
			break
		}
	}
	if err := p.flush(); err != nil {
		return nil, err
	}
	return p.out, nil
}

// pageScan is the per-page state machine.
type pageScan struct {
	format  *Format
	state   state
	accum   []types.Row
	special int
	out     []types.Transaction
}

func (p *pageScan) push(row types.Row) error {
	f := p.format

	if p.state == seekingHeader {
		if matchHeader(row, f.Header) {
			p.state = inTable
		}
		return nil
	}

	if len(row) != f.Columns {
		return fmt.Errorf("%w: row %s has %d cells, want %d", types.ErrFormat, row, len(row), f.Columns)
	}
	if f.IsArtifact != nil && f.IsArtifact(row) {
		return nil
	}
	if p.matchTrailer(row) {
		p.state = tableDone
		return nil
	}
	if f.Fixup != nil {
		row = f.Fixup(row)
	}

	if p.starts(row) {
		if f.ValueColumn >= 0 && row.Cell(f.ValueColumn).Empty() {
			return fmt.Errorf("%w: record row %s has no value", types.ErrFormat, row)
		}
		if err := p.flush(); err != nil {
			return err
		}
	} else {
		if len(p.accum) == 0 {
			return fmt.Errorf("%w: continuation row %s before any record", types.ErrFormat, row)
		}
		if f.ValueColumn >= 0 && !row.Cell(f.ValueColumn).Empty() {
			return fmt.Errorf("%w: continuation row %s carries a value", types.ErrFormat, row)
		}
	}
	p.accum = append(p.accum, row)
	if len(p.accum) > maxFragments {
		return fmt.Errorf("%w: record exceeds %d rows at %s", types.ErrFormat, maxFragments, row)
	}

	if f.BalanceColumn < 0 {
		return nil
	}

	// Eager close: fixed-length records count down their known row total,
	// everything else closes on the balance column.
	if desc := row.Cell(descColumn); desc.Valid {
		if n, ok := f.SpecialLines[desc.String]; ok {
			p.special = n
		}
	}
	if p.special > 0 {
		p.special--
		if p.special > 0 {
			return nil
		}
		return p.flush()
	}
	if row.Cell(f.BalanceColumn).Empty() {
		for _, col := range f.ValueColumns {
			if !row.Cell(col).Empty() {
				return fmt.Errorf("%w: row %s carries values but no balance", types.ErrFormat, row)
			}
		}
		return nil
	}
	return p.flush()
}

// starts reports whether the row begins a new record.
func (p *pageScan) starts(row types.Row) bool {
	if !row.Cell(dateColumn).Empty() {
		return true
	}
	desc := row.Cell(descColumn)
	if desc.Empty() {
		return false
	}
	for _, prefix := range p.format.StartPrefixes {
		if strings.HasPrefix(desc.String, prefix) {
			return true
		}
	}
	return false
}

// flush converts the open accumulation, if any, into a transaction.
func (p *pageScan) flush() error {
	if len(p.accum) == 0 {
		return nil
	}
	if p.special > 0 {
		p.special = 0
		return fmt.Errorf("%w: fixed-length record %s ends before its final row", types.ErrFormat, p.accum[0])
	}
	lines := make([]string, len(p.accum))
	for i, row := range p.accum {
		desc := row.Cell(descColumn)
		if desc.Empty() {
			return fmt.Errorf("%w: record row %s has no description", types.ErrFormat, row)
		}
		lines[i] = desc.String
	}
	terminal := p.accum[len(p.accum)-1]
	if p.format.TerminalFirst {
		terminal = p.accum[0]
	}
	raw := Raw{
		Date:        p.accum[0].Cell(dateColumn),
		Description: strings.Join(lines, "\n"),
		Terminal:    terminal,
	}
	p.accum = p.accum[:0]

	txn, err := p.format.Convert(raw)
	if err != nil {
		return err
	}
	p.out = append(p.out, txn)
	return nil
}

func matchHeader(row types.Row, header []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i, want := range header {
		if row[i].Empty() || row[i].String != want {
			return false
		}
	}
	return true
}

// matchTrailer reports whether the row is one of the format's table
// trailers. Matching ignores spaces and empty cells: the extractor splits
// trailer sentences across cells at arbitrary points.
func (p *pageScan) matchTrailer(row types.Row) bool {
	cells := row
	if p.format.TrailerFirstCellEmpty {
		if len(row) == 0 || !row[0].Empty() {
			return false
		}
		cells = row[1:]
	}
	var joined strings.Builder
	for _, c := range cells {
		if !c.Empty() {
			joined.WriteString(c.String)
		}
	}
	squashed := strings.ReplaceAll(joined.String(), " ", "")
	if squashed == "" {
		return false
	}
	for _, trailer := range p.format.Trailers {
		if squashed == strings.ReplaceAll(trailer, " ", "") {
			return true
		}
	}
	return false
}
