package xrpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

// DefaultHandshakeTimeout bounds the WebSocket handshake with the node.
const DefaultHandshakeTimeout = 5 * time.Second

// Client queries an XRP Ledger node over its public WebSocket API. Each
// command opens a fresh connection, sends one request, reads one response
// and closes. The client itself holds no connection state and is safe for
// concurrent use.
type Client struct {
	nodeURL          string
	handshakeTimeout time.Duration
	lg               log.Logger
}

// NewClient returns a Client for the node at nodeURL (a wss:// endpoint).
// A nil logger is replaced with a NoopLogger.
func NewClient(nodeURL string, lg log.Logger) *Client {
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	return &Client{
		nodeURL:          nodeURL,
		handshakeTimeout: DefaultHandshakeTimeout,
		lg:               lg.WithName("xrpl"),
	}
}

// GetTransaction fetches a transaction by hash with the tx command.
// An unknown hash yields a *TxNotFoundError.
func (c *Client) GetTransaction(ctx context.Context, txHash string) (*TransactionResult, error) {
	command := map[string]any{
		"id":          uuid.NewString(),
		"command":     "tx",
		"transaction": txHash,
		"binary":      false,
	}

	raw, err := c.query(ctx, command)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Result) == 0 {
		return nil, &Error{Message: "malformed transaction response"}
	}

	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(envelope.Result, &probe); err == nil && probe.Error == "txnNotFound" {
		return nil, &TxNotFoundError{Hash: txHash}
	}

	var tx TransactionResult
	if err := json.Unmarshal(envelope.Result, &tx); err != nil {
		return nil, &Error{Message: fmt.Sprintf("unable to decode transaction: %v", err)}
	}
	tx.Raw = raw

	return &tx, nil
}

// IsTransactionValidated reports whether the transaction is present and
// validated. Any failure, including not-found, reads as false.
func (c *Client) IsTransactionValidated(ctx context.Context, txHash string) bool {
	tx, err := c.GetTransaction(ctx, txHash)
	if err != nil {
		return false
	}
	return tx.Validated
}

// GetAccountInfo fetches the account root entry at the latest validated
// ledger with the account_info command.
func (c *Client) GetAccountInfo(ctx context.Context, account string) (*AccountResult, error) {
	command := map[string]any{
		"id":           uuid.NewString(),
		"command":      "account_info",
		"account":      account,
		"strict":       true,
		"ledger_index": "validated",
	}

	raw, err := c.query(ctx, command)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Result) == 0 {
		return nil, &Error{Message: "malformed account_info response"}
	}

	var info AccountResult
	if err := json.Unmarshal(envelope.Result, &info); err != nil {
		return nil, &Error{Message: fmt.Sprintf("unable to decode account info: %v", err)}
	}

	return &info, nil
}

// PollForTransaction repeatedly fetches the transaction until it is
// validated, waiting interval between attempts. A validated result returns
// immediately; not-found waits and retries; other ledger errors propagate.
// Exhausting maxAttempts without a validated result returns (nil, nil).
func (c *Client) PollForTransaction(ctx context.Context, txHash string, maxAttempts int, interval time.Duration) (*TransactionResult, error) {
	lg := c.lg.WithKV("txHash", txHash)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lg.Debug("polling for transaction", "attempt", attempt, "maxAttempts", maxAttempts)

		tx, err := c.GetTransaction(ctx, txHash)
		switch {
		case err == nil && tx.Validated:
			lg.Info("transaction validated", "attempt", attempt)
			return tx, nil
		case err == nil:
			lg.Debug("transaction found but not yet validated")
		case isTxNotFound(err):
			lg.Debug("transaction not found yet", "interval", interval)
		default:
			lg.Error("transaction poll failed", "error", err)
			return nil, err
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}

	lg.Warn("transaction not validated after all attempts", "maxAttempts", maxAttempts)
	return nil, nil
}

// query runs one command over a throwaway connection. A top-level error
// field in the response is reported as a ledger *Error.
func (c *Client) query(ctx context.Context, command map[string]any) (json.RawMessage, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout:  c.handshakeTimeout,
		EnableCompression: true,
	}

	conn, _, err := dialer.DialContext(ctx, c.nodeURL, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: dialing %s: %w", ErrQuery, c.nodeURL, err)
	}
	defer func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
		_ = conn.SetWriteDeadline(deadline)
	}

	if err := conn.WriteJSON(command); err != nil {
		return nil, fmt.Errorf("%w: sending command: %w", ErrQuery, err)
	}
	c.lg.Debug("sent ledger command", "command", command["command"])

	_, raw, err := conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: reading response: %w", ErrQuery, err)
	}

	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if probe.Error != "" {
		return nil, &Error{Message: probe.Error}
	}

	return raw, nil
}

func isTxNotFound(err error) bool {
	return errors.Is(err, ErrTxNotFound)
}
