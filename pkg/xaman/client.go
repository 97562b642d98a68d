package xaman

import (
	"net/http"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

// Client is the composition root of the SDK. All sub-clients share one
// resilient HTTP sender and one logger.
type Client struct {
	Payload *PayloadClient
	Misc    *MiscClient
	Storage *StorageClient
	XApp    *XAppClient
	XAppJWT *XAppJWTClient

	opts Options
}

// ClientOption customizes a Client at construction.
type ClientOption func(*clientConfig)

type clientConfig struct {
	lg      log.Logger
	hc      *http.Client
	metrics *Metrics
}

// WithLogger installs a logger; without it the SDK stays silent.
func WithLogger(lg log.Logger) ClientOption {
	return func(cc *clientConfig) {
		cc.lg = lg
	}
}

// WithHTTPClient replaces the underlying HTTP transport, mainly for
// proxies and tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(cc *clientConfig) {
		cc.hc = hc
	}
}

// WithMetrics wires Prometheus counters into the SDK.
func WithMetrics(m *Metrics) ClientOption {
	return func(cc *clientConfig) {
		cc.metrics = m
	}
}

// New validates the options and builds a Client.
func New(opts Options, clientOpts ...ClientOption) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cc := clientConfig{lg: log.NewNoopLogger()}
	for _, opt := range clientOpts {
		opt(&cc)
	}
	lg := cc.lg.WithName("xaman")

	sender := newHTTPClient(opts, cc.hc, lg, cc.metrics)
	socket := newPayloadSocket(opts, lg, cc.metrics)

	return &Client{
		Payload: newPayloadClient(sender, socket, lg),
		Misc:    newMiscClient(sender, lg),
		Storage: newStorageClient(sender, lg),
		XApp:    newXAppClient(sender, opts, lg),
		XAppJWT: newXAppJWTClient(sender, lg),
		opts:    opts,
	}, nil
}

// Options returns the options the client was built with.
func (c *Client) Options() Options {
	return c.opts
}
