// Package tax computes GST line values and invoice totals. Everything here is
// a pure function of its inputs.
package tax

import (
	"github.com/shopspring/decimal"

	"gstcore/internal/money"
)

// SupplyType selects how tax is split between the centre and the state.
type SupplyType string

const (
	// IntraState supplies carry CGST + SGST.
	IntraState SupplyType = "intra_state"
	// InterState supplies carry IGST. Unknown jurisdictions default here.
	InterState SupplyType = "inter_state"
)

// LineItem is one billable row as entered. Only quantity, rate and tax
// percent feed the arithmetic; derived values are always recomputed.
type LineItem struct {
	Description string
	HSN         string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	TaxPercent  decimal.Decimal
}

// Row is a LineItem with its derived values. Inputs are the clamped values
// that were actually used.
type Row struct {
	Index        int             `json:"index"`
	Description  string          `json:"description,omitempty"`
	HSN          string          `json:"hsn,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	TaxPercent   decimal.Decimal `json:"tax_percent"`
	TaxableValue money.Paise     `json:"taxable_value"`
	TaxAmount    money.Paise     `json:"tax_amount"`
	LineTotal    money.Paise     `json:"line_total"`
}

// Totals is the reconciled invoice summary.
//
// Before a discount, Taxable + CGST + SGST + IGST + RoundOff == GrandTotal.
// After ApplyDiscount, GrandTotal is reduced by Discount.
type Totals struct {
	Taxable    money.Paise `json:"taxable"`
	CGST       money.Paise `json:"cgst"`
	SGST       money.Paise `json:"sgst"`
	IGST       money.Paise `json:"igst"`
	TotalTax   money.Paise `json:"total_tax"`
	RoundOff   money.Paise `json:"round_off"`
	GrandTotal money.Paise `json:"grand_total"`
	Discount   money.Paise `json:"discount"`
}

// Result is the output of ComputeTotals.
type Result struct {
	SupplyType SupplyType `json:"supply_type"`
	Rows       []Row      `json:"rows"`
	Totals     Totals     `json:"totals"`
	HSNSummary []HSNLine  `json:"hsn_summary"`
}
