package tax

import (
	"sort"

	"github.com/shopspring/decimal"

	"gstcore/internal/money"
)

// HSNLine aggregates rows sharing an HSN/SAC code and tax rate, as printed in
// the HSN summary of a tax invoice. Each group is split on its own, so group
// CGST/SGST may differ from the invoice split by a paisa.
type HSNLine struct {
	HSN        string          `json:"hsn"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	Quantity   decimal.Decimal `json:"quantity"`
	Taxable    money.Paise     `json:"taxable"`
	CGST       money.Paise     `json:"cgst"`
	SGST       money.Paise     `json:"sgst"`
	IGST       money.Paise     `json:"igst"`
	TotalTax   money.Paise     `json:"total_tax"`
}

func summarizeHSN(st SupplyType, rows []Row) []HSNLine {
	type key struct {
		hsn  string
		rate string
	}
	idx := make(map[key]int)
	out := make([]HSNLine, 0)

	for i := range rows {
		r := &rows[i]
		k := key{hsn: r.HSN, rate: r.TaxPercent.String()}
		pos, ok := idx[k]
		if !ok {
			pos = len(out)
			idx[k] = pos
			out = append(out, HSNLine{HSN: r.HSN, TaxPercent: r.TaxPercent, Quantity: decimal.Zero})
		}
		line := &out[pos]
		line.Quantity = line.Quantity.Add(r.Quantity)
		line.Taxable += r.TaxableValue
		line.TotalTax += r.TaxAmount
	}

	for i := range out {
		out[i].CGST, out[i].SGST, out[i].IGST = Split(st, out[i].TotalTax)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].HSN != out[j].HSN {
			return out[i].HSN < out[j].HSN
		}
		return out[i].TaxPercent.LessThan(out[j].TaxPercent)
	})
	return out
}
