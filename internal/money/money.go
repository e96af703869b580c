// Package money converts between int64 micro-unit amounts used by the
// settlement core and human-readable decimal strings used in API payloads.
// The core never computes with decimals; this is a display boundary only.
package money

import (
	"github.com/shopspring/decimal"

	apperrors "datamint/internal/errors"
)

// exponent of the micro-unit scale (1e6 micro-units per whole unit).
const exponent = -6

// Format renders a micro-unit amount as a fixed six-decimal string,
// e.g. 1_500_000 -> "1.500000".
func Format(micro int64) string {
	return decimal.New(micro, exponent).StringFixed(6)
}

// Parse converts a decimal string into micro-units. Amounts with more than
// six decimal places are rejected rather than silently truncated.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid decimal amount")
	}
	micro := d.Shift(6)
	if !micro.IsInteger() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount has more than 6 decimal places")
	}
	if !micro.BigInt().IsInt64() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount out of range")
	}
	return micro.IntPart(), nil
}
