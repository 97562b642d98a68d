package main

import (
	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Verify the API credentials and show the application they belong to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			pong, err := client.Misc.Ping(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, pong)
		},
	}
}
