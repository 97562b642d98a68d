package main

import (
	"github.com/spf13/cobra"
)

func newRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates CURRENCY_CODE",
		Short: "Show the exchange rate of a currency against USD and XRP.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			rates, err := client.Misc.GetRates(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, rates)
		},
	}
}
