package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstcore/internal/money"
	"gstcore/internal/tax"
)

const (
	breakdownSheet = "Tax Breakdown"
	hsnSheet       = "HSN Summary"
	amountFormat   = "#,##0.00"
)

var xlsxColumns = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}

// WriteXLSX writes res as a workbook with a line-item breakdown sheet and an
// HSN summary sheet. title goes in the first row of the breakdown.
func WriteXLSX(out io.Writer, res tax.Result, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), breakdownSheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(hsnSheet); err != nil {
		return fmt.Errorf("create hsn sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := writeBreakdown(f, st, res, title); err != nil {
		return err
	}
	if err := writeHSN(f, st, res); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type styles struct {
	title  int
	header int
	text   int
	amount int
	label  int
	total  int
}

func newStyles(f *excelize.File) (*styles, error) {
	numFmt := amountFormat
	var (
		s   styles
		err error
	)
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if s.text, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}); err != nil {
		return nil, fmt.Errorf("create text style: %w", err)
	}
	if s.amount, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}
	if s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}
	if s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}
	return &s, nil
}

// cellWriter keeps the first error from a run of cell writes.
type cellWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *cellWriter) set(cell string, v interface{}, style int) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
		w.err = fmt.Errorf("set %s!%s: %w", w.sheet, cell, err)
		return
	}
	if style != 0 {
		if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
			w.err = fmt.Errorf("style %s!%s: %w", w.sheet, cell, err)
		}
	}
}

func writeBreakdown(f *excelize.File, st *styles, res tax.Result, title string) error {
	widths := []float64{6, 40, 12, 10, 14, 8, 16, 14, 16}
	for i, col := range xlsxColumns {
		if err := f.SetColWidth(breakdownSheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	w := &cellWriter{f: f, sheet: breakdownSheet}
	if title == "" {
		title = "Tax Breakdown"
	}
	w.set("A1", sanitizeCell(title), st.title)
	w.set("A2", "Supply: "+supplyLabel(res.SupplyType), 0)

	for i, h := range columns {
		w.set(fmt.Sprintf("%s4", xlsxColumns[i]), h, st.header)
	}

	row := 5
	for i := range res.Rows {
		r := &res.Rows[i]
		n := fmt.Sprintf("%d", row)
		w.set("A"+n, r.Index+1, st.text)
		w.set("B"+n, sanitizeCell(r.Description), st.text)
		w.set("C"+n, sanitizeCell(r.HSN), st.text)
		w.set("D"+n, r.Quantity.InexactFloat64(), st.text)
		w.set("E"+n, r.Rate.InexactFloat64(), st.amount)
		w.set("F"+n, r.TaxPercent.InexactFloat64(), st.text)
		w.set("G"+n, rupees(r.TaxableValue), st.amount)
		w.set("H"+n, rupees(r.TaxAmount), st.amount)
		w.set("I"+n, rupees(r.LineTotal), st.amount)
		row++
	}

	row++
	for _, l := range summaryLines(res.SupplyType, res.Totals) {
		n := fmt.Sprintf("%d", row)
		w.set("H"+n, l.label, st.label)
		w.set("I"+n, rupees(l.value), st.total)
		row++
	}
	return w.err
}

func writeHSN(f *excelize.File, st *styles, res tax.Result) error {
	w := &cellWriter{f: f, sheet: hsnSheet}
	headers := []string{"HSN/SAC", "Tax %", "Quantity", "Taxable Value", "CGST", "SGST", "IGST", "Total Tax"}
	for i, h := range headers {
		w.set(xlsxColumns[i]+"1", h, st.header)
	}
	for i := range res.HSNSummary {
		l := &res.HSNSummary[i]
		n := fmt.Sprintf("%d", i+2)
		w.set("A"+n, sanitizeCell(l.HSN), st.text)
		w.set("B"+n, l.TaxPercent.InexactFloat64(), st.text)
		w.set("C"+n, l.Quantity.InexactFloat64(), st.text)
		w.set("D"+n, rupees(l.Taxable), st.amount)
		w.set("E"+n, rupees(l.CGST), st.amount)
		w.set("F"+n, rupees(l.SGST), st.amount)
		w.set("G"+n, rupees(l.IGST), st.amount)
		w.set("H"+n, rupees(l.TotalTax), st.amount)
	}
	return w.err
}

func rupees(p money.Paise) float64 {
	return p.Decimal().InexactFloat64()
}

func supplyLabel(st tax.SupplyType) string {
	if st == tax.IntraState {
		return "Intra-state (CGST + SGST)"
	}
	return "Inter-state (IGST)"
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
