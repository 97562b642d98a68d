// Package xaman is a typed client for the Xaman (formerly Xumm) wallet
// platform API. Its core is the payload lifecycle: create a sign request,
// hand its deeplink or QR code to a user, and follow the request's status
// over a WebSocket subscription until the user signs, declines, or the
// request expires.
//
//	client, err := xaman.New(opts, xaman.WithLogger(lg))
//	if err != nil { ... }
//
//	created, err := client.Payload.Create(ctx, &xaman.JSONPayload{
//		TxJSON: xaman.NewTransaction("SignIn"),
//	})
//	if err != nil { ... }
//
//	err = client.Payload.Subscribe(ctx, created.UUID, func(ev xaman.PayloadEvent) {
//		var status struct {
//			Signed *bool `json:"signed"`
//		}
//		_ = json.Unmarshal(ev.Data, &status)
//		if status.Signed != nil {
//			ev.Close()
//		}
//	})
//
// Around the core sit flat clients for the remaining platform surface
// (Misc, Storage, XApp, XAppJWT), all sharing one resilient HTTP sender
// that retries server errors with linear backoff and decodes the
// platform's error envelopes into typed errors.
package xaman
