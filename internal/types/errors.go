package types

import "errors"

// Error kinds reported while converting a statement. Wrapped errors carry
// the offending row or record; match with errors.Is.
var (
	// ErrFormat reports table structure the scanner or converters refuse:
	// misplaced continuation rows, over-long accumulations, value columns
	// without a balance, malformed marker or summary rows.
	ErrFormat = errors.New("statement format violation")

	// ErrAmount reports a monetary string that does not satisfy the
	// format's amount syntax.
	ErrAmount = errors.New("malformed amount")

	// ErrDate reports an unparsable day, month or year token, or a
	// resolved date outside the supported range.
	ErrDate = errors.New("malformed date")

	// ErrBalanceMismatch reports a printed balance that disagrees with the
	// computed running balance, or a missing or contradicted closing
	// balance.
	ErrBalanceMismatch = errors.New("balance mismatch")
)
