// Command atm is the operator CLI of the ATM backend.
package main

import (
	"fmt"
	"os"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var cfg *config.App

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "atm",
		Short:         "Operate the ATM backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			decimal.MarshalJSONWithoutQuotes = true
			envFile, _ := cmd.Flags().GetString("env")
			var err error
			cfg, err = config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().String("env", ".env", "environment file")
	root.PersistentFlags().Bool("json", false, "always print JSON")

	root.AddCommand(
		newMigrateCmd(),
		newRatesCmd(),
		newReportCmd(),
		newBalancesCmd(),
		newWithdrawCmd(),
		newTokenCmd(),
	)
	return root
}
