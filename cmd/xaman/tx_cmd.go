package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xrpl-community/xaman-go/pkg/xaman"
	"github.com/xrpl-community/xaman-go/pkg/xrpl"
)

func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx TX_HASH",
		Short: "Query a transaction on the XRP Ledger.",
		Long: "tx queries the configured XRPL node (XRPL_NODE_URL) directly over\n" +
			"WebSocket. With --wait it polls until the transaction is found in a\n" +
			"validated ledger or the attempt budget runs out.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txHash := args[0]
			if !xrpl.IsSHA512Half(txHash) {
				return fmt.Errorf("%q is not a transaction hash", txHash)
			}
			wait, err := cmd.Flags().GetBool("wait")
			if err != nil {
				return err
			}

			lg, err := newLogger(cmd)
			if err != nil {
				return err
			}
			opts, err := xaman.XRPLOptionsFromEnv()
			if err != nil {
				return err
			}
			client := xrpl.NewClient(opts.NodeURL, lg)

			if wait {
				tx, err := client.PollForTransaction(cmd.Context(), txHash, opts.MaxAttempts, opts.RetryInterval)
				if err != nil {
					return err
				}
				if tx == nil {
					return fmt.Errorf("transaction %s not found after %d attempts", txHash, opts.MaxAttempts)
				}
				return printJSON(cmd, tx)
			}

			tx, err := client.GetTransaction(cmd.Context(), txHash)
			if err != nil {
				return err
			}
			return printJSON(cmd, tx)
		},
	}
	cmd.Flags().Bool("wait", false, "poll until the transaction is validated")
	return cmd
}
