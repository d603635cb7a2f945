package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gstcore/internal/money"
	"gstcore/internal/words"
)

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words AMOUNT",
		Short: "Spell an amount in the Indian numbering system",
		Example: `  gstctl words 12345678
  gstctl words "₹1,23,456.50" --plain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := money.Parse(args[0])
			if plain, _ := cmd.Flags().GetBool("plain"); plain {
				fmt.Fprintln(cmd.OutOrStdout(), words.AmountToWords(amount))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), words.Rupees(amount))
			return nil
		},
	}
	cmd.Flags().Bool("plain", false, "Omit the \"Rupees ... Only\" wrapper")
	return cmd
}
