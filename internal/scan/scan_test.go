package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

func row(cells ...string) types.Row {
	return types.RowFromStrings(cells...)
}

func TestScanSkipsPreambleUntilHeader(t *testing.T) {
	page := []types.Row{
		row("Your statement", "", ""),
		row("Period", "26 Nov 2022 - 25 Dec 2022", ""),
		row("Date", "Transaction Details", "Amount (A$)"),
		row("26 Nov", "PAYMENT RECEIVED, THANK YOU", "400.00-"),
	}

	txns, err := New(Card).Scan([][]types.Row{page})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "PAYMENT RECEIVED, THANK YOU", txns[0].Description)
}

func TestScanPageWithoutHeaderYieldsNothing(t *testing.T) {
	page := []types.Row{
		row("26 Nov", "PAYMENT RECEIVED, THANK YOU", "400.00-"),
		row("27 Nov", "SOME STORE", "10.00"),
	}

	txns, err := New(Card).Scan([][]types.Row{page})
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestScanStopsAtTrailer(t *testing.T) {
	page := []types.Row{
		row("Date", "Transaction Details", "Amount (A$)"),
		row("26 Nov", "SOME STORE", "10.00"),
		row("How to pay", "We’re here", "to help"),
		// Not even malformed rows matter past the trailer.
		row("", "", "999.99"),
	}

	txns, err := New(Card).Scan([][]types.Row{page})
	require.NoError(t, err)
	require.Len(t, txns, 1)
}

func TestScanPagesAreIndependent(t *testing.T) {
	pages := [][]types.Row{
		{
			row("Date", "Transaction Details", "Amount (A$)"),
			row("26 Nov", "SOME STORE", "10.00"),
		},
		{
			row("Page 2 of 2", "", ""),
			row("Date", "Transaction Details", "Amount (A$)"),
			row("27 Nov", "ANOTHER STORE", "20.00"),
		},
	}

	txns, err := New(Card).Scan(pages)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "SOME STORE", txns[0].Description)
	assert.Equal(t, "ANOTHER STORE", txns[1].Description)
}

func TestScanRejectsOverlongAccumulation(t *testing.T) {
	page := []types.Row{
		row("Date", "Transaction Details", "Amount (A$)"),
		row("26 Nov", "SOME STORE", "10.00"),
		row("", "LINE TWO", ""),
		row("", "LINE THREE", ""),
		row("", "LINE FOUR", ""),
	}

	_, err := New(Card).Scan([][]types.Row{page})
	require.ErrorIs(t, err, types.ErrFormat)
	assert.Contains(t, err.Error(), "exceeds 3 rows")
}

func TestScanRejectsContinuationBeforeAnyRecord(t *testing.T) {
	page := []types.Row{
		row("Date", "Transaction Details", "Amount (A$)"),
		row("", "ORPHAN CONTINUATION", ""),
	}

	_, err := New(Card).Scan([][]types.Row{page})
	require.ErrorIs(t, err, types.ErrFormat)
}

func TestScanRejectsWrongArity(t *testing.T) {
	page := []types.Row{
		row("Date", "Transaction Details", "Amount (A$)"),
		row("26 Nov", "SOME STORE", "10.00", "EXTRA"),
	}

	_, err := New(Card).Scan([][]types.Row{page})
	require.ErrorIs(t, err, types.ErrFormat)
}

func TestScanReportsPageNumber(t *testing.T) {
	pages := [][]types.Row{
		{
			row("Date", "Transaction Details", "Amount (A$)"),
			row("26 Nov", "SOME STORE", "10.00"),
		},
		{
			row("Date", "Transaction Details", "Amount (A$)"),
			row("", "ORPHAN CONTINUATION", ""),
		},
	}

	_, err := New(Card).Scan(pages)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{"account", "card"}, r.List())

	f, ok := r.Get("account")
	require.True(t, ok)
	assert.Equal(t, Account, f)

	_, ok = r.Get("cheque")
	assert.False(t, ok)
}
