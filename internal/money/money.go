// Package money parses the monetary strings printed on bank statements into
// exact decimals.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/statement-tools/cba-pdf-to-csv/internal/types"
)

// Options selects the amount syntax a statement layout prints. AllowNegative
// and CrDr are mutually exclusive, and NegativeTrailing requires
// AllowNegative; Parse panics on contradictory options, since layouts are
// fixed configuration rather than document data.
type Options struct {
	// LeadingDollar requires a "$" before the digits.
	LeadingDollar bool
	// AllowNegative accepts a "-" sign marker.
	AllowNegative bool
	// NegativeTrailing places the "-" after the digits instead of before.
	NegativeTrailing bool
	// CrDr reads a " CR"/" DR" suffix as the sign, DR meaning negative.
	// The suffix is mandatory when set.
	CrDr bool
}

// Parse converts a statement amount to an exact decimal, preserving the
// printed scale. The sign marker is read first, then the currency prefix,
// then digit-grouping commas are stripped and the remainder must parse as a
// plain decimal. Failures wrap types.ErrAmount.
func Parse(s string, opts Options) (decimal.Decimal, error) {
	if opts.AllowNegative && opts.CrDr {
		panic("money: AllowNegative and CrDr are mutually exclusive")
	}
	if opts.NegativeTrailing && !opts.AllowNegative {
		panic("money: NegativeTrailing requires AllowNegative")
	}

	input := s
	negative := false
	if opts.CrDr {
		switch {
		case strings.HasSuffix(s, " DR"):
			negative = true
			s = strings.TrimSuffix(s, " DR")
		case strings.HasSuffix(s, " CR"):
			s = strings.TrimSuffix(s, " CR")
		default:
			return decimal.Decimal{}, fmt.Errorf("%w: %q has no CR/DR suffix", types.ErrAmount, input)
		}
	}
	if opts.AllowNegative {
		if opts.NegativeTrailing {
			if strings.HasSuffix(s, "-") {
				negative = true
				s = strings.TrimSuffix(s, "-")
			}
		} else if strings.HasPrefix(s, "-") {
			negative = true
			s = strings.TrimPrefix(s, "-")
		}
	}
	if opts.LeadingDollar {
		if !strings.HasPrefix(s, "$") {
			return decimal.Decimal{}, fmt.Errorf("%w: %q has no leading $", types.ErrAmount, input)
		}
		s = strings.TrimPrefix(s, "$")
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", types.ErrAmount, input)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// Text renders an amount at its stored scale, trailing zeros included.
// Decimal.String trims them, turning 100.00 into "100"; statement output
// keeps the scale the statement printed.
func Text(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}
