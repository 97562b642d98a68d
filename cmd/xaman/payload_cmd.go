package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xrpl-community/xaman-go/pkg/xaman"
)

func newPayloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Create, inspect and cancel sign requests.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	cmd.AddCommand(newPayloadCreateCmd())
	cmd.AddCommand(newPayloadGetCmd())
	cmd.AddCommand(newPayloadCancelCmd())
	return cmd
}

func newPayloadCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sign request and print the URLs to hand to the user.",
		Example: "  xaman payload create --txjson '{\"TransactionType\":\"SignIn\"}'\n" +
			"  xaman payload create --txjson @payment.json --watch",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txjson, err := cmd.Flags().GetString("txjson")
			if err != nil {
				return err
			}
			txblob, err := cmd.Flags().GetString("txblob")
			if err != nil {
				return err
			}
			watch, err := cmd.Flags().GetBool("watch")
			if err != nil {
				return err
			}
			userToken, err := cmd.Flags().GetString("user-token")
			if err != nil {
				return err
			}

			payload, err := buildPayload(txjson, txblob, userToken)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			created, err := client.Payload.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			if err := printJSON(cmd, created); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "watching payload "+created.UUID+", ctrl-c to stop")
			return client.Payload.Subscribe(cmd.Context(), created.UUID, func(event xaman.PayloadEvent) {
				fmt.Fprintln(cmd.OutOrStdout(), string(event.Data))
				if payloadResolved(event.Data) {
					event.Close()
				}
			})
		},
	}
	cmd.Flags().String("txjson", "", "transaction template as a JSON document")
	cmd.Flags().String("txblob", "", "signed transaction blob in hex")
	cmd.Flags().String("user-token", "", "push the request to this user token")
	cmd.Flags().Bool("watch", false, "subscribe to the payload and print events until it resolves")
	return cmd
}

func newPayloadGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAYLOAD_UUID",
		Short: "Show the current state of a sign request.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			details, err := client.Payload.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, details)
		},
	}
}

func newPayloadCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel PAYLOAD_UUID",
		Short: "Revoke an open sign request.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			deleted, err := client.Payload.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, deleted)
		},
	}
}

func buildPayload(txjson, txblob, userToken string) (any, error) {
	switch {
	case txjson != "" && txblob != "":
		return nil, fmt.Errorf("--txjson and --txblob are mutually exclusive")
	case txjson != "":
		if rest, ok := strings.CutPrefix(txjson, "@"); ok {
			raw, err := os.ReadFile(rest)
			if err != nil {
				return nil, err
			}
			txjson = string(raw)
		}
		var tx xaman.Transaction
		if err := json.Unmarshal([]byte(txjson), &tx); err != nil {
			return nil, fmt.Errorf("invalid --txjson: %w", err)
		}
		return &xaman.JSONPayload{
			PayloadBase: xaman.PayloadBase{UserToken: userToken},
			TxJSON:      tx,
		}, nil
	case txblob != "":
		return &xaman.BlobPayload{
			PayloadBase: xaman.PayloadBase{UserToken: userToken},
			TxBlob:      txblob,
		}, nil
	default:
		return nil, fmt.Errorf("either --txjson or --txblob is required")
	}
}

// payloadResolved reports whether a subscription frame carries a terminal
// state: signed or not, expired, or the payload being gone.
func payloadResolved(data json.RawMessage) bool {
	var frame struct {
		Signed  *bool `json:"signed"`
		Expired *bool `json:"expired"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		return false
	}
	return frame.Signed != nil || (frame.Expired != nil && *frame.Expired)
}
