package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"gstcore/internal/money"
	"gstcore/internal/tax"
)

// PDFHeader carries the descriptive parts of a printed tax invoice.
type PDFHeader struct {
	Title         string
	InvoiceNumber string
	IssuedOn      string
	Seller        string
	Buyer         string
	AmountInWords string
}

// WritePDF renders res as a one-document tax invoice summary: line items,
// the tax split, round-off, discount and the amount in words.
func WritePDF(out io.Writer, res tax.Result, h PDFHeader) error {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	m := maroto.New(cfg)

	title := h.Title
	if title == "" {
		title = "Tax Invoice"
	}
	m.AddRow(12, text.NewCol(12, title, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Left}))

	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice number: "+orDash(h.InvoiceNumber), props.Text{Size: 9}),
			text.New("Date of issue: "+orDash(h.IssuedOn), props.Text{Size: 9, Top: 5}),
			text.New("Supply: "+supplyLabel(res.SupplyType), props.Text{Size: 9, Top: 10}),
		),
		col.New(3).Add(
			text.New("Seller", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(orDash(h.Seller), props.Text{Size: 9, Top: 5}),
		),
		col.New(3).Add(
			text.New("Buyer", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(orDash(h.Buyer), props.Text{Size: 9, Top: 5}),
		),
	)

	header := props.Text{Size: 8, Style: fontstyle.Bold}
	headerRight := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	m.AddRow(8,
		text.NewCol(1, "#", header),
		text.NewCol(3, "Description", header),
		text.NewCol(1, "HSN/SAC", header),
		text.NewCol(1, "Qty", headerRight),
		text.NewCol(2, "Rate", headerRight),
		text.NewCol(1, "Tax %", headerRight),
		text.NewCol(1, "Tax", headerRight),
		text.NewCol(2, "Amount", headerRight),
	)

	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	for i := range res.Rows {
		r := &res.Rows[i]
		m.AddRow(7,
			text.NewCol(1, fmt.Sprintf("%d", r.Index+1), cell),
			text.NewCol(3, r.Description, cell),
			text.NewCol(1, r.HSN, cell),
			text.NewCol(1, r.Quantity.String(), cellRight),
			text.NewCol(2, r.Rate.StringFixed(2), cellRight),
			text.NewCol(1, r.TaxPercent.String(), cellRight),
			text.NewCol(1, r.TaxAmount.String(), cellRight),
			text.NewCol(2, r.LineTotal.String(), cellRight),
		)
	}

	m.AddRow(4, col.New(12))
	for _, l := range summaryLines(res.SupplyType, res.Totals) {
		style := props.Text{Size: 9}
		if l.label == "Grand Total" {
			style.Style = fontstyle.Bold
		}
		valueStyle := style
		valueStyle.Align = align.Right
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, l.label, style),
			text.NewCol(2, pdfAmount(l.value), valueStyle),
		)
	}

	if h.AmountInWords != "" {
		m.AddRow(12, text.NewCol(12, h.AmountInWords, props.Text{Size: 9, Style: fontstyle.Italic, Top: 4}))
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}
	if _, err := out.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// pdfAmount spells the currency as "Rs." since the core PDF fonts have no
// rupee glyph.
func pdfAmount(p money.Paise) string {
	return strings.Replace(money.FormatINR(p), "₹", "Rs. ", 1)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
