package tax

import "gstcore/internal/money"

// PaymentStatus summarizes a Settlement for display.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentOverpaid PaymentStatus = "overpaid"
)

// ApplyDiscount sets a flat post-tax discount. The amount is clamped to
// [0, grand total before any discount]; taxable value and tax are untouched.
// Applying again replaces the earlier discount instead of stacking.
func ApplyDiscount(t Totals, discount money.Paise) Totals {
	base := t.GrandTotal + t.Discount
	d := money.Clamp(discount, 0, money.Max(base, 0))

	out := t
	out.Discount = d
	out.GrandTotal = base - d
	return out
}

// Outstanding returns how much is still owed. It never goes below zero.
func Outstanding(t Totals, paid money.Paise) money.Paise {
	return money.Max(0, t.GrandTotal-money.Max(paid, 0))
}

// Settlement records a payment against an invoice. Paid keeps the amount as
// received, including any excess over the grand total.
type Settlement struct {
	Paid        money.Paise   `json:"paid"`
	Outstanding money.Paise   `json:"outstanding"`
	Excess      money.Paise   `json:"excess"`
	Overpaid    bool          `json:"overpaid"`
	Status      PaymentStatus `json:"status"`
}

// Settle reconciles paid against t. Negative payments count as nothing paid.
func Settle(t Totals, paid money.Paise) Settlement {
	paid = money.Max(paid, 0)
	s := Settlement{
		Paid:        paid,
		Outstanding: Outstanding(t, paid),
		Excess:      money.Max(0, paid-t.GrandTotal),
	}
	s.Overpaid = s.Excess > 0

	switch {
	case s.Overpaid:
		s.Status = PaymentOverpaid
	case s.Outstanding == 0:
		s.Status = PaymentPaid
	case paid == 0:
		s.Status = PaymentUnpaid
	default:
		s.Status = PaymentPartial
	}
	return s
}
