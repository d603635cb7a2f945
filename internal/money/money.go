package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Paise is an INR amount in minor units. All totals are summed as Paise so
// that aggregation never drifts.
type Paise int64

// MaxPaise bounds any single converted amount so that sums over a few
// thousand rows stay inside int64.
const MaxPaise Paise = 1_000_000_000_000_000

var (
	hundred = decimal.NewFromInt(100)
	maxDec  = decimal.New(int64(MaxPaise), -2)
	minDec  = maxDec.Neg()
)

// FromDecimal rounds d to two places (half away from zero) and converts it to
// Paise, saturating at ±MaxPaise.
func FromDecimal(d decimal.Decimal) Paise {
	if d.GreaterThan(maxDec) {
		return MaxPaise
	}
	if d.LessThan(minDec) {
		return -MaxPaise
	}
	return Paise(d.Round(2).Mul(hundred).IntPart())
}

// FromRupees converts a whole-rupee count.
func FromRupees(r int64) Paise {
	return Paise(r * 100)
}

// Decimal returns the amount in rupees.
func (p Paise) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

// String renders the amount as a plain two-decimal number, e.g. "1180.00".
func (p Paise) String() string {
	return p.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (p Paise) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts anything Lenient accepts.
func (p *Paise) UnmarshalJSON(b []byte) error {
	var l Lenient
	if err := l.UnmarshalJSON(b); err != nil {
		return err
	}
	*p = FromDecimal(l.Decimal)
	return nil
}

// Max returns the larger of a and b.
func Max(a, b Paise) Paise {
	if a > b {
		return a
	}
	return b
}

// Clamp bounds p to [lo, hi].
func Clamp(p, lo, hi Paise) Paise {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// Parse reads a decimal amount from free text. Anything that is not a finite
// number (blank, "NaN", "Infinity", "12abc") yields zero.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "₹")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NonNegative clamps negative values to zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
