package xaman

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

// payloadSocket opens payload status streams. It holds no per-payload
// state, so one instance serves concurrent subscriptions.
type payloadSocket struct {
	baseURL          string
	handshakeTimeout time.Duration
	lg               log.Logger
	metrics          *Metrics
}

func newPayloadSocket(opts Options, lg log.Logger, metrics *Metrics) *payloadSocket {
	return &payloadSocket{
		baseURL:          opts.PayloadWSBaseURL,
		handshakeTimeout: 5 * time.Second,
		lg:               lg.WithName("ws"),
		metrics:          metrics,
	}
}

// openStream connects to the status stream of one payload and returns a
// channel of raw text frames. The connection lives until ctx is canceled,
// the server closes, or a read fails. The channel is closed on every exit
// path; handleClosure receives the terminal error, nil for cancellation
// and clean server close.
func (s *payloadSocket) openStream(ctx context.Context, payloadUUID string, handleClosure func(err error)) (<-chan string, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout:  s.handshakeTimeout,
		EnableCompression: true,
	}

	url := s.streamURL(payloadUUID)
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &WSError{UUID: payloadUUID, Err: fmt.Errorf("%w: %w", ErrWSConnect, err)}
	}
	s.metrics.recordWSConnection()

	lg := s.lg.WithKV("payloadUuid", payloadUUID)
	lg.Info("subscription active")

	// Cancellation is delivered to the blocked reader by closing the
	// connection out from under it.
	teardownDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-teardownDone:
		}
	}()

	messages := make(chan string)
	go func() {
		defer close(teardownDone)
		defer close(messages)
		defer conn.Close()

		for {
			msgType, raw, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					lg.Info("subscription ended", "reason", "canceled")
					handleClosure(nil)
					return
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					lg.Info("subscription ended", "reason", "closed by server")
					handleClosure(nil)
					return
				}
				lg.Error("subscription failed", "error", err)
				handleClosure(&WSError{UUID: payloadUUID, Err: fmt.Errorf("%w: %w", ErrWSRead, err)})
				return
			}
			if msgType != websocket.TextMessage || len(raw) == 0 {
				continue
			}

			s.metrics.recordWSMessage()
			lg.Debug("received message", "size", len(raw))

			select {
			case messages <- string(raw):
			case <-ctx.Done():
				lg.Info("subscription ended", "reason", "canceled")
				handleClosure(nil)
				return
			}
		}
	}()

	return messages, nil
}

func (s *payloadSocket) streamURL(payloadUUID string) string {
	return strings.TrimSuffix(s.baseURL, "/") + "/" + payloadUUID
}
