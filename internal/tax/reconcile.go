package tax

import (
	"fmt"

	"gstcore/internal/money"
)

// maxRoundOff is the largest round-off a rupee rounding can produce.
const maxRoundOff money.Paise = 50

// Check is the outcome of one arithmetic rule applied to a Result.
type Check struct {
	Key      string `json:"key"`
	Passed   bool   `json:"passed"`
	Field    string `json:"field"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Message  string `json:"message"`
}

type rule struct {
	key  string
	name string
	run  func(key, name string, r *Result) []Check
}

func check(key, name, field string, expected, actual money.Paise) Check {
	passed := expected == actual
	msg := fmt.Sprintf("%s: %s matches", name, field)
	if !passed {
		msg = fmt.Sprintf("%s: %s mismatch (expected %s, got %s)", name, field, expected, actual)
	}
	return Check{
		Key: key, Passed: passed, Field: field,
		Expected: expected.String(), Actual: actual.String(), Message: msg,
	}
}

func assertion(key, name, field string, passed bool, detail string) Check {
	msg := fmt.Sprintf("%s: %s ok", name, field)
	if !passed {
		msg = fmt.Sprintf("%s: %s %s", name, field, detail)
	}
	return Check{Key: key, Passed: passed, Field: field, Message: msg}
}

var rules = []rule{
	{
		key: "math.row.line_total", name: "Row Line Total",
		run: func(key, name string, r *Result) []Check {
			out := make([]Check, 0, len(r.Rows))
			for i := range r.Rows {
				row := &r.Rows[i]
				out = append(out, check(key, name,
					fmt.Sprintf("rows[%d].line_total", i), row.TaxableValue+row.TaxAmount, row.LineTotal))
			}
			return out
		},
	},
	{
		key: "math.totals.taxable", name: "Taxable Sum",
		run: func(key, name string, r *Result) []Check {
			var sum money.Paise
			for i := range r.Rows {
				sum += r.Rows[i].TaxableValue
			}
			return []Check{check(key, name, "totals.taxable", sum, r.Totals.Taxable)}
		},
	},
	{
		key: "math.totals.total_tax", name: "Tax Sum",
		run: func(key, name string, r *Result) []Check {
			var sum money.Paise
			for i := range r.Rows {
				sum += r.Rows[i].TaxAmount
			}
			return []Check{check(key, name, "totals.total_tax", sum, r.Totals.TotalTax)}
		},
	},
	{
		key: "math.totals.split", name: "Tax Split",
		run: func(key, name string, r *Result) []Check {
			t := &r.Totals
			return []Check{check(key, name, "totals.cgst+sgst+igst", t.TotalTax, t.CGST+t.SGST+t.IGST)}
		},
	},
	{
		key: "xf.supply_type", name: "Supply Type",
		run: func(key, name string, r *Result) []Check {
			t := &r.Totals
			if r.SupplyType == IntraState {
				diff := t.CGST - t.SGST
				return []Check{assertion(key, name, "totals",
					t.IGST == 0 && diff >= 0 && diff <= 1,
					fmt.Sprintf("intra-state must carry CGST+SGST only (cgst %s, sgst %s, igst %s)", t.CGST, t.SGST, t.IGST))}
			}
			return []Check{assertion(key, name, "totals",
				t.CGST == 0 && t.SGST == 0,
				fmt.Sprintf("inter-state must carry IGST only (cgst %s, sgst %s)", t.CGST, t.SGST))}
		},
	},
	{
		key: "math.totals.round_off", name: "Round Off",
		run: func(key, name string, r *Result) []Check {
			ro := r.Totals.RoundOff
			return []Check{assertion(key, name, "totals.round_off",
				ro >= -maxRoundOff && ro <= maxRoundOff,
				fmt.Sprintf("%s exceeds ±0.50", ro))}
		},
	},
	{
		key: "math.totals.grand_total", name: "Grand Total",
		run: func(key, name string, r *Result) []Check {
			t := &r.Totals
			expected := t.Taxable + t.CGST + t.SGST + t.IGST + t.RoundOff - t.Discount
			out := []Check{check(key, name, "totals.grand_total", expected, t.GrandTotal)}
			before := t.GrandTotal + t.Discount
			out = append(out, assertion(key, name, "totals.grand_total",
				before%100 == 0, fmt.Sprintf("before discount %s is not a whole rupee", before)))
			return out
		},
	},
	{
		key: "math.totals.discount", name: "Discount",
		run: func(key, name string, r *Result) []Check {
			t := &r.Totals
			return []Check{assertion(key, name, "totals.discount",
				t.Discount >= 0 && t.GrandTotal >= 0,
				fmt.Sprintf("%s outside [0, grand total]", t.Discount))}
		},
	},
}

// Reconcile re-derives the arithmetic relationships of r and reports each.
func Reconcile(r Result) []Check {
	var out []Check
	for _, rl := range rules {
		out = append(out, rl.run(rl.key, rl.name, &r)...)
	}
	return out
}

// Failed filters checks down to the ones that did not pass.
func Failed(checks []Check) []Check {
	var out []Check
	for _, c := range checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}
