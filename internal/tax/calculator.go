package tax

import (
	"strings"

	"gstcore/internal/money"
)

// ComputeTotals derives every row and the invoice totals from scratch.
//
// Negative quantity, rate or tax percent is treated as zero. Each row's
// taxable value and tax are rounded to paise (half-up); totals are summed in
// paise. For an intra-state supply the odd paisa of an uneven split goes to
// CGST. The grand total is rounded to the rupee (half-up) and the difference
// is carried in RoundOff. ComputeTotals never fails.
func ComputeTotals(items []LineItem, buyer, seller Jurisdiction) Result {
	res := Result{
		SupplyType: SupplyTypeFor(buyer, seller),
		Rows:       make([]Row, 0, len(items)),
	}

	var taxable, tax money.Paise
	for i := range items {
		row := computeRow(i, &items[i])
		taxable += row.TaxableValue
		tax += row.TaxAmount
		res.Rows = append(res.Rows, row)
	}

	res.Totals = buildTotals(res.SupplyType, taxable, tax)
	res.HSNSummary = summarizeHSN(res.SupplyType, res.Rows)
	return res
}

func computeRow(i int, item *LineItem) Row {
	qty := money.NonNegative(item.Quantity)
	rate := money.NonNegative(item.Rate)
	pct := money.NonNegative(item.TaxPercent)

	taxable := money.FromDecimal(qty.Mul(rate))
	tax := money.FromDecimal(taxable.Decimal().Mul(pct).Shift(-2))

	return Row{
		Index:        i,
		Description:  strings.TrimSpace(item.Description),
		HSN:          strings.TrimSpace(item.HSN),
		Quantity:     qty,
		Rate:         rate,
		TaxPercent:   pct,
		TaxableValue: taxable,
		TaxAmount:    tax,
		LineTotal:    taxable + tax,
	}
}

func buildTotals(st SupplyType, taxable, tax money.Paise) Totals {
	t := Totals{Taxable: taxable, TotalTax: tax}
	t.CGST, t.SGST, t.IGST = Split(st, tax)

	unrounded := taxable + tax
	t.GrandTotal = RoundRupee(unrounded)
	t.RoundOff = t.GrandTotal - unrounded
	return t
}

// Split divides tax into CGST, SGST and IGST for the supply type.
func Split(st SupplyType, tax money.Paise) (cgst, sgst, igst money.Paise) {
	if st != IntraState {
		return 0, 0, tax
	}
	sgst = tax / 2
	return tax - sgst, sgst, 0
}

// RoundRupee rounds a non-negative amount to the nearest whole rupee, half-up.
func RoundRupee(p money.Paise) money.Paise {
	return (p + 50) / 100 * 100
}
