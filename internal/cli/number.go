package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gstcore/internal/invoiceno"
)

func newNumberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "number",
		Short: "Render an invoice number without touching any counter",
		Long: `Render an invoice number for a given sequence value and date.

Template tokens: {PREFIX} {YYYY} {YY} {MM} {DD} {FY} {SEQ} {SEQn}, where {FY}
is the Indian fiscal year (e.g. 24-25) and {SEQn} zero-pads to n digits.`,
		Example: `  gstctl number --seq 7 --date 2024-03-15 --prefix BPH
  gstctl number --seq 42 --template "{PREFIX}/{FY}/{SEQ4}"`,
		Args: cobra.NoArgs,
		RunE: runNumber,
	}

	f := cmd.Flags()
	f.Int64("seq", 0, "Sequence value (1 or more)")
	f.String("date", "", "Issue date (YYYY-MM-DD, default: today)")
	f.String("prefix", invoiceno.DefaultPrefix, "Invoice prefix")
	f.String("template", invoiceno.DefaultTemplate, "Number template")
	_ = cmd.MarkFlagRequired("seq")
	return cmd
}

func runNumber(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	seq, _ := flags.GetInt64("seq")
	dateStr, _ := flags.GetString("date")
	prefix, _ := flags.GetString("prefix")
	template, _ := flags.GetString("template")

	date := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid date format. Use YYYY-MM-DD: %w", err)
		}
		date = parsed
	}

	number, err := invoiceno.Format(template, date, seq, prefix)
	if err != nil {
		return err
	}
	if err := invoiceno.ValidateManual(number); err != nil {
		return fmt.Errorf("generated number %q: %w", number, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), number)
	return nil
}
