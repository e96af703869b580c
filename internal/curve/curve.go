// Package curve implements the bonding-curve price math for datasets.
// All amounts are int64 micro-units (Scale = 1e6) of the settlement
// currency, and every operation floors via integer division so that
// per-week rounding compounds exactly the same way a step-by-step
// ledger replay would.
package curve

import "math"

const (
	// WeekSeconds is the length of one depreciation period.
	WeekSeconds int64 = 604800

	// Scale is the smallest-unit scale of the settlement currency.
	Scale int64 = 1_000_000

	// DepreciationNum over Scale is the weekly decay ratio (0.9).
	DepreciationNum int64 = 900_000

	// MarkupNum over Scale is the post-purchase markup ratio (1.5).
	MarkupNum int64 = 1_500_000

	// MaxPrice bounds prices so that a markup can never overflow int64.
	MaxPrice = math.MaxInt64 / MarkupNum
)

// WeeksElapsed returns the number of whole weeks between lastPurchaseAt and
// now, both unix seconds. A week elapses at exactly WeekSeconds (half-open
// intervals, no double counting at boundaries). Negative elapsed time, from
// a non-monotonic clock, saturates to zero.
func WeeksElapsed(lastPurchaseAt, now int64) int64 {
	elapsed := now - lastPurchaseAt
	if elapsed <= 0 {
		return 0
	}
	return elapsed / WeekSeconds
}

// Depreciate applies the weekly decay to price, once per elapsed week.
// The multiplication-then-truncation is repeated per week, not collapsed
// into a single exponentiation: each week's rounding carries into the next
// week's base.
func Depreciate(price, weeks int64) int64 {
	for ; weeks > 0 && price > 0; weeks-- {
		price = price * DepreciationNum / Scale
	}
	return price
}

// Markup applies the post-purchase 1.5x markup to the price just paid.
// The input must not exceed MaxPrice or the multiplication overflows.
func Markup(price int64) int64 {
	return price * MarkupNum / Scale
}

// NextBase returns the base price stored after a purchase at pricePaid:
// the 1.5x markup clamped to [1, MaxPrice]. The stored base therefore
// always satisfies the positive-price constraint, and every future markup
// stays within int64 range.
func NextBase(pricePaid int64) int64 {
	base := Markup(pricePaid)
	if base > MaxPrice {
		return MaxPrice
	}
	if base < 1 {
		return 1
	}
	return base
}

// PriceAt returns the current price of a curve with the given base price and
// last-purchase timestamp at wall-clock time now (unix seconds).
func PriceAt(basePrice, lastPurchaseAt, now int64) int64 {
	return Depreciate(basePrice, WeeksElapsed(lastPurchaseAt, now))
}
