package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List services with their base price and rate per sq ft",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SERVICE\tBASE\tPER SQ FT")
		for _, e := range entities.ServiceCatalog() {
			fmt.Fprintf(w, "%s\t$%s\t$%s\n", e.Name, pricing.FormatAmount(e.BasePrice), pricing.FormatAmount(e.RatePerArea))
		}
		fmt.Fprintf(w, "Per room\t$%s\t\n", pricing.FormatAmount(pricing.RoomFee))
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}
