package paynow

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// maxAmountLength bounds tag 54; "9999999999.99" is the largest amount accepted.
	maxAmountLength = 13
	// maxIntegerDigits is the integer part of the largest amount.
	maxIntegerDigits = maxAmountLength - 3
	// minAmountExponent limits how many fractional digits are rounded away.
	minAmountExponent = -32
)

// FormatAmount renders amount with exactly two fractional digits, rounding
// half away from zero.
//
// Magnitude and precision are checked on the coefficient and exponent before
// any rescaling, so values such as 1e100000000 are rejected without being
// expanded.
func FormatAmount(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", encodingErr(TagTransactionAmount, "amount is negative")
	}
	if amount.IsZero() {
		return "0.00", nil
	}
	if amount.NumDigits()+int(amount.Exponent()) > maxIntegerDigits {
		return "", encodingErr(TagTransactionAmount, "amount exceeds %d characters", maxAmountLength)
	}
	if amount.Exponent() < minAmountExponent {
		return "", encodingErr(TagTransactionAmount, "amount has more than %d fractional digits", -minAmountExponent)
	}

	// Rounding can still carry into an eleventh integer digit.
	s := amount.StringFixed(2)
	if len(s) > maxAmountLength {
		return "", encodingErr(TagTransactionAmount, "amount exceeds %d characters", maxAmountLength)
	}
	return s, nil
}

// AmountFromFloat converts a float amount, rejecting NaN and infinities.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, encodingErr(TagTransactionAmount, "amount is not finite")
	}
	return decimal.NewFromFloat(f), nil
}

// ParseAmount parses a plain decimal string such as "10.5". Exponent
// notation is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, encodingErr(TagTransactionAmount, "amount must be a plain decimal number")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, encodingErr(TagTransactionAmount, "amount is not a decimal number")
	}
	return d, nil
}
