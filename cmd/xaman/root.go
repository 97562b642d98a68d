package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xrpl-community/xaman-go/pkg/log"
	"github.com/xrpl-community/xaman-go/pkg/xaman"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xaman",
		Short: "Interact with the Xaman platform API from the command line",
		Long: "xaman talks to the Xaman (Xumm) platform API: create and watch sign\n" +
			"requests, look up platform data and query the XRP Ledger.\n\n" +
			"Credentials are read from XAMAN_API_KEY and XAMAN_API_SECRET, or from\n" +
			"a .env file in the working directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	cmd.PersistentFlags().String("log-level", "warn", `log verbosity: "debug", "info", "warn" or "error"`)
	cmd.PersistentFlags().String("log-format", "console", `log format: "console", "logfmt" or "json"`)

	cmd.AddCommand(newPingCmd())
	cmd.AddCommand(newPayloadCmd())
	cmd.AddCommand(newTxCmd())
	cmd.AddCommand(newRatesCmd())
	cmd.AddCommand(newKycCmd())
	return cmd
}

// newLogger builds the CLI logger from the persistent flags.
func newLogger(cmd *cobra.Command) (log.Logger, error) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, err
	}
	return log.NewZapLogger(log.Config{
		Format: format,
		Level:  log.Level(level),
		Output: "stderr",
	}), nil
}

// newClient builds an SDK client from the environment.
func newClient(cmd *cobra.Command) (*xaman.Client, error) {
	lg, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	opts, err := xaman.OptionsFromEnv()
	if err != nil {
		return nil, err
	}
	return xaman.New(opts, xaman.WithLogger(lg))
}

// printJSON renders an API result on the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
