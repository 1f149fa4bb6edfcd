package scan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statement-tools/cba-pdf-to-csv/internal/money"
	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

var accountHeader = row("Date", "Transaction", "Debit", "Credit", "Balance")

// accountTrailerRows is the table trailer as the extractor typically splits
// it across the value columns.
func accountTrailerRows() types.Row {
	return row("", "Opening balance - Total debits", "+ Total credits", "= Closing", "balance")
}

func TestScanAccountStatement(t *testing.T) {
	page := []types.Row{
		row("Statement 12", "", "", "", ""),
		accountHeader,
		row("01 Jul", "2016 OPENING BALANCE", "", "", "$100.00 CR"),
		row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", "$80.00 CR"),
		row("04 Jul", "SALARY DEPOSIT", "", "$50.00", "$130.00 CR"),
		row("05 Jul", "TRANSFER TO SAVINGS", "", "", ""),
		row("", "REF 1234", "30.00", "$", "$100.00 CR"),
		row("30 Jul", "CREDIT INTEREST EARNED on this account", "", "", ""),
		row("", "FOR PERIOD 01 JUL - 30 JUL", "", "$", ""),
		row("31 Jul", "2016 CLOSING BALANCE", "", "", "$100.00 CR"),
		accountTrailerRows(),
	}

	txns, err := New(Account).Scan([][]types.Row{page})
	require.NoError(t, err)
	require.Len(t, txns, 6)

	opening := txns[0]
	assert.Equal(t, types.MarkerOpening, opening.Marker)
	assert.Equal(t, 2016, opening.MarkerYear)
	assert.Nil(t, opening.Amount)
	require.NotNil(t, opening.Balance)
	assert.Equal(t, "100.00", money.Text(*opening.Balance))

	purchase := txns[1]
	assert.Equal(t, &types.PartialDate{Month: time.July, Day: 3}, purchase.Date)
	require.NotNil(t, purchase.Amount)
	assert.Equal(t, "-20.00", money.Text(*purchase.Amount))
	assert.Equal(t, "80.00", money.Text(*purchase.Balance))

	deposit := txns[2]
	require.NotNil(t, deposit.Amount)
	assert.Equal(t, "50.00", money.Text(*deposit.Amount), "credit parses after its artifact prefix")

	transfer := txns[3]
	assert.Equal(t, "TRANSFER TO SAVINGS\nREF 1234", transfer.Description)
	require.NotNil(t, transfer.Amount)
	assert.Equal(t, "-30.00", money.Text(*transfer.Amount), "values come from the last fragment")

	interest := txns[4]
	assert.Equal(t, "CREDIT INTEREST EARNED on this account\nFOR PERIOD 01 JUL - 30 JUL", interest.Description)
	assert.Nil(t, interest.Amount)
	assert.Nil(t, interest.Balance)

	closing := txns[5]
	assert.Equal(t, types.MarkerClosing, closing.Marker)
	assert.Equal(t, 2016, closing.MarkerYear)
}

func TestScanAccountSkipsCarriedBalanceArtifacts(t *testing.T) {
	page := []types.Row{
		accountHeader,
		row("01 Jul", "2016 OPENING BALANCE", "", "", "$100.00 CR"),
		row("", "", "BALANCE CARRIED", "FORWARD", "$100.00 CR"),
		row("", "BALANCE BROUGHT FORWARD", "", "", ""),
		row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", "$80.00 CR"),
	}

	txns, err := New(Account).Scan([][]types.Row{page})
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "EFTPOS PURCHASE", txns[1].Description)
}

func TestScanAccountResplitsDriftedYearDigit(t *testing.T) {
	page := []types.Row{
		accountHeader,
		row("01 Jul 2", "016 OPENING BALANCE", "", "", "$1,000.00 CR"),
	}

	txns, err := New(Account).Scan([][]types.Row{page})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "2016 OPENING BALANCE", txns[0].Description)
	assert.Equal(t, &types.PartialDate{Month: time.July, Day: 1}, txns[0].Date)
	assert.Equal(t, types.MarkerOpening, txns[0].Marker)
	assert.Equal(t, 2016, txns[0].MarkerYear)
}

func TestScanAccountRejectsValuesWithoutBalance(t *testing.T) {
	page := []types.Row{
		accountHeader,
		row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", ""),
	}

	_, err := New(Account).Scan([][]types.Row{page})
	require.ErrorIs(t, err, types.ErrFormat)
	assert.Contains(t, err.Error(), "no balance")
}

func TestScanAccountRejectsRecordLeftOpenAtEndOfPage(t *testing.T) {
	page := []types.Row{
		accountHeader,
		row("05 Jul", "TRANSFER TO SAVINGS", "", "", ""),
	}

	_, err := New(Account).Scan([][]types.Row{page})
	require.ErrorIs(t, err, types.ErrFormat)
}

func TestScanAccountRejectsInterruptedFixedLengthRecord(t *testing.T) {
	page := []types.Row{
		accountHeader,
		row("30 Jul", "CREDIT INTEREST EARNED on this account", "", "", ""),
		row("31 Jul", "2016 CLOSING BALANCE", "", "", "$100.00 CR"),
	}

	_, err := New(Account).Scan([][]types.Row{page})
	require.ErrorIs(t, err, types.ErrFormat)
	assert.Contains(t, err.Error(), "final row")
}

func TestConvertAccount(t *testing.T) {
	tests := []struct {
		name        string
		raw         Raw
		wantAmount  string
		wantBalance string
		expectError error
	}{
		{
			name: "debit",
			raw: Raw{
				Date:        types.NewCell("03 Jul"),
				Description: "EFTPOS PURCHASE",
				Terminal:    row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", "$80.00 CR"),
			},
			wantAmount:  "-20.00",
			wantBalance: "80.00",
		},
		{
			name: "overdrawn_balance",
			raw: Raw{
				Date:        types.NewCell("03 Jul"),
				Description: "EFTPOS PURCHASE",
				Terminal:    row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", "$20.00 DR"),
			},
			wantAmount:  "-20.00",
			wantBalance: "-20.00",
		},
		{
			name: "nil_balance_normalizes_to_zero",
			raw: Raw{
				Date:        types.NewCell("03 Jul"),
				Description: "EFTPOS PURCHASE",
				Terminal:    row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", "Nil"),
			},
			wantAmount:  "-20.00",
			wantBalance: "0.00",
		},
		{
			name: "dollar_zero_balance_normalizes_to_zero",
			raw: Raw{
				Date:        types.NewCell("03 Jul"),
				Description: "EFTPOS PURCHASE",
				Terminal:    row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", "$0.00"),
			},
			wantAmount:  "-20.00",
			wantBalance: "0.00",
		},
		{
			name: "credit_with_digit_artifact",
			raw: Raw{
				Date:        types.NewCell("04 Jul"),
				Description: "SALARY DEPOSIT",
				Terminal:    row("04 Jul", "SALARY DEPOSIT", "", "150.00", "$130.00 CR"),
			},
			wantAmount:  "50.00",
			wantBalance: "130.00",
		},
		{
			name: "debit_without_credit_artifact",
			raw: Raw{
				Date:        types.NewCell("03 Jul"),
				Description: "EFTPOS PURCHASE",
				Terminal:    row("03 Jul", "EFTPOS PURCHASE", "20.00", "", "$80.00 CR"),
			},
			expectError: types.ErrFormat,
		},
		{
			name: "neither_debit_nor_credit",
			raw: Raw{
				Date:        types.NewCell("03 Jul"),
				Description: "EFTPOS PURCHASE",
				Terminal:    row("03 Jul", "EFTPOS PURCHASE", "", "", "$80.00 CR"),
			},
			expectError: types.ErrFormat,
		},
		{
			name: "balance_record_with_values",
			raw: Raw{
				Date:        types.NewCell("01 Jul"),
				Description: "2016 OPENING BALANCE",
				Terminal:    row("01 Jul", "2016 OPENING BALANCE", "20.00", "$", "$100.00 CR"),
			},
			expectError: types.ErrFormat,
		},
		{
			name: "marker_without_year_prefix",
			raw: Raw{
				Date:        types.NewCell("01 Jul"),
				Description: "JULY OPENING BALANCE",
				Terminal:    row("01 Jul", "JULY OPENING BALANCE", "", "", "$100.00 CR"),
			},
			expectError: types.ErrDate,
		},
		{
			name: "undated_record",
			raw: Raw{
				Description: "EFTPOS PURCHASE",
				Terminal:    row("", "EFTPOS PURCHASE", "20.00", "$", "$80.00 CR"),
			},
			expectError: types.ErrFormat,
		},
		{
			name: "unparsable_balance",
			raw: Raw{
				Date:        types.NewCell("03 Jul"),
				Description: "EFTPOS PURCHASE",
				Terminal:    row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", "80.00"),
			},
			expectError: types.ErrAmount,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txn, err := convertAccount(tc.raw)
			if tc.expectError != nil {
				require.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, txn.Amount)
			require.NotNil(t, txn.Balance)
			assert.Equal(t, tc.wantAmount, money.Text(*txn.Amount))
			assert.Equal(t, tc.wantBalance, money.Text(*txn.Balance))
		})
	}
}

func TestConvertAccountBalanceScale(t *testing.T) {
	raw := Raw{
		Date:        types.NewCell("03 Jul"),
		Description: "EFTPOS PURCHASE",
		Terminal:    row("03 Jul", "EFTPOS PURCHASE", "20.00", "$", "Nil"),
	}

	txn, err := convertAccount(raw)
	require.NoError(t, err)
	assert.True(t, txn.Balance.Equal(decimal.New(0, -2)))
	assert.Equal(t, "0.00", money.Text(*txn.Balance), "normalized zero keeps two decimal places")
}
