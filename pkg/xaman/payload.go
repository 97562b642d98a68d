package xaman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

// replicationDelay is how long Subscribe waits before fetching and opening
// the stream, giving backend replication time to register a fresh payload.
const replicationDelay = 75 * time.Millisecond

// PayloadHandler receives subscription events. It is called synchronously
// from the subscription loop, one event at a time, in arrival order.
type PayloadHandler func(event PayloadEvent)

// PayloadClient creates and manages sign requests and drives their status
// subscriptions.
//
// Every fetching/mutating operation comes in two variants: the plain one
// returns (*T, error), the Try one logs failures and returns nil instead,
// for callers polling quietly.
type PayloadClient struct {
	http   *httpClient
	socket *payloadSocket
	lg     log.Logger
}

func newPayloadClient(http *httpClient, socket *payloadSocket, lg log.Logger) *PayloadClient {
	return &PayloadClient{
		http:   http,
		socket: socket,
		lg:     lg.WithName("payload"),
	}
}

// Create submits a new sign request. The payload is either a *JSONPayload,
// a *BlobPayload or a Transaction template.
func (c *PayloadClient) Create(ctx context.Context, payload any) (*CreatedPayload, error) {
	body, err := createBody(payload)
	if err != nil {
		return nil, err
	}

	var created CreatedPayload
	if err := c.http.do(ctx, http.MethodPost, "platform/payload", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// TryCreate is Create with failures logged and swallowed.
func (c *PayloadClient) TryCreate(ctx context.Context, payload any) *CreatedPayload {
	created, err := c.Create(ctx, payload)
	if err != nil {
		c.lg.Error("failed to create payload", "error", err)
		return nil
	}
	return created
}

// Get fetches the current state of a sign request. A payload the platform
// does not know yields a *NotFoundError.
func (c *PayloadClient) Get(ctx context.Context, payloadUUID string) (*PayloadDetails, error) {
	var details PayloadDetails
	err := c.http.do(ctx, http.MethodGet, "platform/payload/"+payloadUUID, nil, &details)
	if err != nil {
		return nil, notFoundOr(err, payloadUUID)
	}
	if !details.Meta.Exists {
		return nil, &NotFoundError{UUID: payloadUUID}
	}
	return &details, nil
}

// TryGet is Get with failures logged and swallowed, not-found included.
func (c *PayloadClient) TryGet(ctx context.Context, payloadUUID string) *PayloadDetails {
	details, err := c.Get(ctx, payloadUUID)
	if err != nil {
		c.lg.Error("failed to get payload", "payloadUuid", payloadUUID, "error", err)
		return nil
	}
	return details
}

// GetByCustomIdentifier fetches a sign request by the caller-assigned
// identifier from its custom meta.
func (c *PayloadClient) GetByCustomIdentifier(ctx context.Context, identifier string) (*PayloadDetails, error) {
	var details PayloadDetails
	err := c.http.do(ctx, http.MethodGet, "platform/payload/ci/"+identifier, nil, &details)
	if err != nil {
		return nil, notFoundOr(err, identifier)
	}
	if !details.Meta.Exists {
		return nil, &NotFoundError{UUID: identifier}
	}
	return &details, nil
}

// TryGetByCustomIdentifier is GetByCustomIdentifier with failures logged
// and swallowed.
func (c *PayloadClient) TryGetByCustomIdentifier(ctx context.Context, identifier string) *PayloadDetails {
	details, err := c.GetByCustomIdentifier(ctx, identifier)
	if err != nil {
		c.lg.Error("failed to get payload by custom identifier", "identifier", identifier, "error", err)
		return nil
	}
	return details
}

// Cancel revokes an open sign request.
func (c *PayloadClient) Cancel(ctx context.Context, payloadUUID string) (*DeletedPayload, error) {
	var deleted DeletedPayload
	err := c.http.do(ctx, http.MethodDelete, "platform/payload/"+payloadUUID, nil, &deleted)
	if err != nil {
		return nil, notFoundOr(err, payloadUUID)
	}
	return &deleted, nil
}

// TryCancel is Cancel with failures logged and swallowed.
func (c *PayloadClient) TryCancel(ctx context.Context, payloadUUID string) *DeletedPayload {
	deleted, err := c.Cancel(ctx, payloadUUID)
	if err != nil {
		c.lg.Error("failed to cancel payload", "payloadUuid", payloadUUID, "error", err)
		return nil
	}
	return deleted
}

// Subscribe opens the status stream of a payload and delivers each frame
// to handler until the stream ends. It blocks for the lifetime of the
// subscription and returns nil when the stream ends cleanly: server close,
// ctx cancellation, or the handler calling the event's Close.
//
// The payload must exist; Subscribe fails with a *NotFoundError otherwise.
func (c *PayloadClient) Subscribe(ctx context.Context, payloadUUID string, handler PayloadHandler) error {
	streamCtx, closeStream := context.WithCancel(ctx)
	defer closeStream()

	// Give the backend a moment to replicate a just-created payload
	// before subscribing to it.
	select {
	case <-time.After(replicationDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	details, err := c.Get(ctx, payloadUUID)
	if err != nil {
		return err
	}

	streamErr := make(chan error, 1)
	messages, err := c.socket.openStream(streamCtx, payloadUUID, func(err error) {
		streamErr <- err
	})
	if err != nil {
		return err
	}

	for message := range messages {
		if !json.Valid([]byte(message)) {
			c.lg.Warn("discarding malformed frame", "payloadUuid", payloadUUID, "size", len(message))
			continue
		}
		handler(PayloadEvent{
			UUID:    payloadUUID,
			Data:    json.RawMessage(message),
			Details: details,
			Close:   closeStream,
		})
	}

	if err := <-streamErr; err != nil {
		return err
	}
	// A close initiated through the event's Close callback is a clean end;
	// the caller's own cancellation still surfaces as such.
	return ctx.Err()
}

// CreateAndSubscribe creates a sign request and subscribes to it. The
// creation and the subscription setup run synchronously; the receive loop
// then continues in a goroutine, reporting its terminal error (nil for a
// clean end) through handleClosure. The created handle is returned as
// soon as the subscription is being established.
func (c *PayloadClient) CreateAndSubscribe(ctx context.Context, payload any, handler PayloadHandler, handleClosure func(err error)) (*CreatedPayload, error) {
	created, err := c.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	go func() {
		handleClosure(c.Subscribe(ctx, created.UUID, handler))
	}()

	return created, nil
}

func createBody(payload any) (any, error) {
	switch p := payload.(type) {
	case *JSONPayload:
		return p, nil
	case JSONPayload:
		return &p, nil
	case *BlobPayload:
		return p, nil
	case BlobPayload:
		return &p, nil
	case Transaction:
		return &JSONPayload{TxJSON: p}, nil
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("unsupported payload type %T", payload)}
	}
}

// notFoundOr maps 404 API errors onto the uniform not-found kind and
// passes everything else through.
func notFoundOr(err error, payloadUUID string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return &NotFoundError{UUID: payloadUUID}
	}
	return err
}
