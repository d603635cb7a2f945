// Package export writes computed tax breakdowns for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstcore/internal/money"
	"gstcore/internal/tax"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows
// detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the line-item header row.
var columns = []string{
	"#",
	"Description",
	"HSN/SAC",
	"Quantity",
	"Rate",
	"Tax %",
	"Taxable Value",
	"Tax Amount",
	"Line Total",
}

// Writer wraps csv.Writer for exporting a tax breakdown as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the line-item header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows writes one CSV row per computed line.
func (w *Writer) WriteRows(rows []tax.Row) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes a blank separator followed by label/value pairs for
// the invoice totals. Columns that do not apply to the supply type are
// omitted.
func (w *Writer) WriteSummary(st tax.SupplyType, t tax.Totals) error {
	if err := w.csv.Write([]string{}); err != nil {
		return err
	}
	for _, l := range summaryLines(st, t) {
		if err := w.csv.Write([]string{l.label, l.value.String()}); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header, line rows and totals of res to out.
func WriteCSV(out io.Writer, res tax.Result) error {
	if _, err := out.Write(BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRows(res.Rows); err != nil {
		return err
	}
	if err := w.WriteSummary(res.SupplyType, res.Totals); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func rowToRecord(r *tax.Row) []string {
	return []string{
		strconv.Itoa(r.Index + 1),
		sanitizeCell(r.Description),
		sanitizeCell(r.HSN),
		r.Quantity.String(),
		r.Rate.String(),
		r.TaxPercent.String(),
		r.TaxableValue.String(),
		r.TaxAmount.String(),
		r.LineTotal.String(),
	}
}

type summaryLine struct {
	label string
	value money.Paise
}

func summaryLines(st tax.SupplyType, t tax.Totals) []summaryLine {
	lines := []summaryLine{{"Taxable Value", t.Taxable}}
	if st == tax.IntraState {
		lines = append(lines, summaryLine{"CGST", t.CGST}, summaryLine{"SGST", t.SGST})
	} else {
		lines = append(lines, summaryLine{"IGST", t.IGST})
	}
	lines = append(lines,
		summaryLine{"Total Tax", t.TotalTax},
		summaryLine{"Round Off", t.RoundOff},
	)
	if t.Discount != 0 {
		lines = append(lines, summaryLine{"Discount", t.Discount})
	}
	return append(lines, summaryLine{"Grand Total", t.GrandTotal})
}

// sanitizeCell neutralises text that a spreadsheet would evaluate as a
// formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition or on disk.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "invoice"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), at.Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}
