package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statement-tools/cba-pdf-to-csv/internal/money"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

var cardHeader = row("Date", "Transaction Details", "Amount (A$)")

func TestScanCardStatement(t *testing.T) {
	page := []types.Row{
		row("Your statement", "", ""),
		cardHeader,
		row("26 Nov", "PAYMENT RECEIVED, THANK YOU", "400.00-"),
		row("28 Nov", "AMAZON AU", "50.00"),
		row("", "SYDNEY AU", ""),
		row("", "Interest charged on purchases", "5.50"),
	}

	txns, err := New(Card).Scan([][]types.Row{page})
	require.NoError(t, err)
	require.Len(t, txns, 3)

	payment := txns[0]
	assert.Equal(t, &types.PartialDate{Month: time.November, Day: 26}, payment.Date)
	require.NotNil(t, payment.Amount)
	assert.Equal(t, "400.00", money.Text(*payment.Amount), "payments apply positive to the running balance")
	assert.Nil(t, payment.Balance, "the card layout prints no per-row balance")

	charge := txns[1]
	assert.Equal(t, "AMAZON AU\nSYDNEY AU", charge.Description)
	require.NotNil(t, charge.Amount)
	assert.Equal(t, "-50.00", money.Text(*charge.Amount), "charges apply negative, from the first fragment")

	interest := txns[2]
	assert.Nil(t, interest.Date, "interest records settle on the statement closing date")
	require.NotNil(t, interest.Amount)
	assert.Equal(t, "-5.50", money.Text(*interest.Amount))
}

func TestScanCardFlushesAtEitherTrailer(t *testing.T) {
	for _, trailer := range []types.Row{
		row("How to pay", "We’re here", "to help"),
		row("", "How to pay We’re here to help", ""),
		row("Please check your transactions listed on this statement", "and report any discrepancy to the Bank", "before the payment due date."),
	} {
		page := []types.Row{
			cardHeader,
			row("26 Nov", "SOME STORE", "10.00"),
			row("", "SECOND LINE", ""),
			trailer,
		}

		txns, err := New(Card).Scan([][]types.Row{page})
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "SOME STORE\nSECOND LINE", txns[0].Description)
	}
}

func TestScanCardRejectsStartWithoutAmount(t *testing.T) {
	page := []types.Row{
		cardHeader,
		row("26 Nov", "SOME STORE", ""),
	}

	_, err := New(Card).Scan([][]types.Row{page})
	require.ErrorIs(t, err, types.ErrFormat)
	assert.Contains(t, err.Error(), "no value")
}

func TestScanCardRejectsContinuationWithAmount(t *testing.T) {
	page := []types.Row{
		cardHeader,
		row("26 Nov", "SOME STORE", "10.00"),
		row("", "SECOND LINE", "5.00"),
	}

	_, err := New(Card).Scan([][]types.Row{page})
	require.ErrorIs(t, err, types.ErrFormat)
	assert.Contains(t, err.Error(), "carries a value")
}

func TestConvertCardDatedInterestStillUsesClosingDate(t *testing.T) {
	// A dated row whose description opens with the interest prefix is
	// still treated as the implicit-date record.
	raw := Raw{
		Date:        types.NewCell("20 Dec"),
		Description: "Interest charged on cash advances",
		Terminal:    row("20 Dec", "Interest charged on cash advances", "2.50"),
	}

	txn, err := convertCard(raw)
	require.NoError(t, err)
	assert.Nil(t, txn.Date)
	assert.Equal(t, "-2.50", money.Text(*txn.Amount))
}

func TestConvertCardRejectsBadAmount(t *testing.T) {
	raw := Raw{
		Date:        types.NewCell("26 Nov"),
		Description: "SOME STORE",
		Terminal:    row("26 Nov", "SOME STORE", "10.00.00"),
	}

	_, err := convertCard(raw)
	require.ErrorIs(t, err, types.ErrAmount)
}

func TestConvertCardRejectsBadDate(t *testing.T) {
	raw := Raw{
		Date:        types.NewCell("boxing day"),
		Description: "SOME STORE",
		Terminal:    row("boxing day", "SOME STORE", "10.00"),
	}

	_, err := convertCard(raw)
	require.ErrorIs(t, err, types.ErrDate)
}
