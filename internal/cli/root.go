// Package cli implements the gstctl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gstcore/internal/logger"
)

var version = "0.1.0"

// NewRootCmd builds the gstctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gstctl",
		Short: "gstctl - GST invoice totals from the command line",
		Long: `gstctl prices Indian GST invoice drafts offline.

It computes per-line taxable value and tax, splits tax into CGST+SGST or
IGST by comparing buyer and seller states, rounds the grand total to the
rupee, applies discounts and payments, and spells amounts in words.

The seller state defaults to GSTCORE_COMPANY_STATE (or GSTCORE_COMPANY_GSTIN)
from the environment or a .env file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newTotalsCmd(), newWordsCmd(), newNumberCmd())
	return root
}

// Execute runs gstctl and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func commandLogger(cmd *cobra.Command, component string) *zap.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	log, err := logger.New(level, "console")
	if err != nil {
		return zap.NewNop()
	}
	return log.Named(component)
}
