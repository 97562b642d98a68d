package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKycCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kyc ACCOUNT_OR_USER_TOKEN",
		Short: "Show the KYC status of an account address or user token.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			status, err := client.Misc.GetKycStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(status))
			return nil
		},
	}
}
