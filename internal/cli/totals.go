package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gstcore/internal/config"
	"gstcore/internal/export"
	"gstcore/internal/money"
	"gstcore/internal/service"
	"gstcore/internal/tax"
)

func newTotalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Compute GST totals for an invoice draft",
		Long: `Read an invoice draft as JSON and print the per-line breakdown, the tax
split, round-off, discount, settlement and the amount in words.

The draft has the same shape as the POST /api/v1/totals body:

  {"items": [{"description": "...", "hsn": "3004", "quantity": 2, "rate": 500, "tax_percent": 18}],
   "buyer": {"state": "Karnataka"}, "discount": 0, "amount_paid": 0}`,
		Example: `  # Price a draft
  gstctl totals -f draft.json

  # Override the buyer state and export a workbook
  gstctl totals -f draft.json --buyer 07-Delhi --xlsx quote.xlsx --pdf quote.pdf

  # Fail if any arithmetic check does not reconcile
  cat draft.json | gstctl totals -f - --verify`,
		Args: cobra.NoArgs,
		RunE: runTotals,
	}

	f := cmd.Flags()
	f.StringP("file", "f", "", "Draft JSON file ('-' reads stdin)")
	f.String("buyer", "", "Buyer state, code, code-name pair or GSTIN")
	f.String("seller", "", "Seller state, code, code-name pair or GSTIN")
	f.String("discount", "", "Flat post-tax discount in rupees")
	f.String("paid", "", "Amount already paid in rupees")
	f.String("xlsx", "", "Also write the breakdown to this .xlsx file")
	f.String("csv", "", "Also write the breakdown to this .csv file")
	f.String("pdf", "", "Also write a printable invoice summary to this .pdf file")
	f.Bool("json", false, "Print the result as JSON")
	f.Bool("verify", false, "Re-check every arithmetic invariant and fail on mismatch")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runTotals(cmd *cobra.Command, _ []string) error {
	log := commandLogger(cmd, "totals")
	flags := cmd.Flags()

	path, _ := flags.GetString("file")
	input, err := readDraft(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	if buyer, _ := flags.GetString("buyer"); buyer != "" {
		input.Buyer = &service.QuoteParty{State: buyer}
		input.Customer = nil
		input.BuyerState = ""
	}
	if seller, _ := flags.GetString("seller"); seller != "" {
		input.Seller = &service.QuoteParty{State: seller}
		input.SellerState = ""
	}
	if discount, _ := flags.GetString("discount"); discount != "" {
		input.Discount = money.LStr(discount)
	}
	if paid, _ := flags.GetString("paid"); paid != "" {
		input.AmountPaid = money.LStr(paid)
	}

	var fallback tax.Jurisdiction
	if cfg, err := config.Load(); err != nil {
		log.Warn("config not loaded; no default seller", zap.Error(err))
	} else {
		fallback = cfg.Company.Jurisdiction()
	}

	q, err := service.NewQuoteService(fallback, nil, log).Quote(cmd.Context(), input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := flags.GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(q); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else if err := printQuote(out, q); err != nil {
		return err
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if xlsxPath, _ := flags.GetString("xlsx"); xlsxPath != "" {
		if err := writeFile(xlsxPath, func(w io.Writer) error { return export.WriteXLSX(w, q.Result, title) }); err != nil {
			return err
		}
		log.Info("wrote workbook", zap.String("path", xlsxPath))
	}
	if csvPath, _ := flags.GetString("csv"); csvPath != "" {
		if err := writeFile(csvPath, func(w io.Writer) error { return export.WriteCSV(w, q.Result) }); err != nil {
			return err
		}
		log.Info("wrote csv", zap.String("path", csvPath))
	}

	if pdfPath, _ := flags.GetString("pdf"); pdfPath != "" {
		header := export.PDFHeader{
			Title:         title,
			IssuedOn:      time.Now().Format("2006-01-02"),
			Seller:        orUnknown(q.Seller),
			Buyer:         orUnknown(q.Buyer),
			AmountInWords: q.AmountInWords,
		}
		if err := writeFile(pdfPath, func(w io.Writer) error { return export.WritePDF(w, q.Result, header) }); err != nil {
			return err
		}
		log.Info("wrote pdf", zap.String("path", pdfPath))
	}

	if verify, _ := flags.GetBool("verify"); verify {
		checks := tax.Reconcile(q.Result)
		failed := tax.Failed(checks)
		for _, c := range failed {
			fmt.Fprintf(out, "FAIL %s: %s\n", c.Key, c.Message)
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d checks failed", len(failed), len(checks))
		}
		fmt.Fprintf(out, "All %d checks passed\n", len(checks))
	}
	return nil
}

func readDraft(stdin io.Reader, path string) (service.QuoteInput, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return service.QuoteInput{}, fmt.Errorf("read draft: %w", err)
	}

	var input service.QuoteInput
	if err := json.Unmarshal(data, &input); err != nil {
		return service.QuoteInput{}, fmt.Errorf("parse draft %s: %w", path, err)
	}
	return input, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func printQuote(out io.Writer, q *service.Quote) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Supply:\t%s\t(buyer %s, seller %s)\n", q.SupplyType, orUnknown(q.Buyer), orUnknown(q.Seller))
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "#\tDescription\tHSN\tQty\tRate\tTax %\tTaxable\tTax\tTotal")
	for i := range q.Rows {
		r := &q.Rows[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Index+1, r.Description, r.HSN, r.Quantity, r.Rate, r.TaxPercent,
			r.TaxableValue, r.TaxAmount, r.LineTotal)
	}
	fmt.Fprintln(tw)

	f := q.Formatted
	fmt.Fprintf(tw, "Taxable value\t%s\n", f.Taxable)
	if q.SupplyType == tax.IntraState {
		fmt.Fprintf(tw, "CGST\t%s\n", f.CGST)
		fmt.Fprintf(tw, "SGST\t%s\n", f.SGST)
	} else {
		fmt.Fprintf(tw, "IGST\t%s\n", f.IGST)
	}
	fmt.Fprintf(tw, "Round off\t%s\n", f.RoundOff)
	if q.Totals.Discount != 0 {
		fmt.Fprintf(tw, "Discount\t%s\n", f.Discount)
	}
	fmt.Fprintf(tw, "Grand total\t%s\n", f.GrandTotal)
	fmt.Fprintf(tw, "Paid\t%s\n", money.FormatINR(q.Settlement.Paid))
	fmt.Fprintf(tw, "Outstanding\t%s\t(%s)\n", f.Outstanding, q.Settlement.Status)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, q.AmountInWords)
	return tw.Flush()
}

func orUnknown(j tax.Jurisdiction) string {
	if j.IsZero() {
		return "unknown"
	}
	return j.String()
}
