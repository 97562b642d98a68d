package xaman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

// Version is reported in the User-Agent header of every request.
const Version = "1.0.0"

// requestOption tweaks a single request before it is sent.
type requestOption func(*requestConfig)

type requestConfig struct {
	credentials bool
	headers     map[string]string
}

// withoutCredentials drops the X-API-Key/X-API-Secret headers, for public
// endpoints and for endpoints authenticated some other way.
func withoutCredentials() requestOption {
	return func(rc *requestConfig) {
		rc.credentials = false
	}
}

// withHeader adds one header to the request, e.g. a bearer token or a
// one-time token.
func withHeader(key, value string) requestOption {
	return func(rc *requestConfig) {
		rc.headers[key] = value
	}
}

// httpClient is the resilient sender behind every REST call of the SDK.
// Requests are retried on 5xx responses and transport failures with a
// linearly growing delay; 4xx responses surface immediately.
type httpClient struct {
	opts    Options
	hc      *http.Client
	lg      log.Logger
	metrics *Metrics
}

func newHTTPClient(opts Options, hc *http.Client, lg log.Logger, metrics *Metrics) *httpClient {
	if hc == nil {
		hc = &http.Client{Timeout: opts.HTTPTimeout}
	}
	return &httpClient{
		opts:    opts,
		hc:      hc,
		lg:      lg.WithName("http"),
		metrics: metrics,
	}
}

// do sends one API request and decodes the 2xx response body into out.
// A nil body sends no payload; a json.RawMessage or []byte body is sent
// verbatim, anything else is marshalled.
func (c *httpClient) do(ctx context.Context, method, endpoint string, body any, out any, opts ...requestOption) error {
	rc := requestConfig{
		credentials: true,
		headers:     map[string]string{},
	}
	for _, opt := range opts {
		opt(&rc)
	}

	payload, err := encodeBody(body)
	if err != nil {
		return &APIError{StatusCode: 500, Message: fmt.Sprintf("unable to encode request body: %v", err)}
	}

	resp, raw, err := c.send(ctx, method, endpoint, payload, rc)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeErrorEnvelope(resp, raw)
	}

	if out == nil {
		return nil
	}
	if len(raw) == 0 || string(raw) == "null" {
		return &APIError{StatusCode: 500, Message: fmt.Sprintf("unexpected response for %s: unable to deserialize response", endpoint)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{StatusCode: 500, Message: fmt.Sprintf("unexpected response for %s: %v", endpoint, err)}
	}

	return nil
}

// send runs the retry loop. It returns the last response obtained, or an
// error when no usable response could be obtained at all.
func (c *httpClient) send(ctx context.Context, method, endpoint string, payload []byte, rc requestConfig) (*http.Response, []byte, error) {
	url := c.requestURL(endpoint)

	var lastResp *http.Response
	var lastBody []byte

	for attempt := 0; ; {
		req, err := c.newRequest(ctx, method, url, payload, rc)
		if err != nil {
			return nil, nil, &APIError{StatusCode: 500, Message: fmt.Sprintf("unable to build request: %v", err)}
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				c.lg.Debug("request canceled", "endpoint", endpoint)
				return nil, nil, ctx.Err()
			}
			c.metrics.recordRequest(method, "transport_error")

			if attempt < c.opts.MaxRetries {
				attempt++
				c.lg.Warn("request failed, retrying",
					"endpoint", endpoint, "attempt", attempt, "error", err)
				if err := c.wait(ctx, attempt); err != nil {
					return nil, nil, err
				}
				continue
			}
			// The final attempt produced no response; an earlier 5xx in
			// lastResp would misreport what actually happened.
			return nil, nil, &APIError{
				StatusCode: 500,
				Message:    "unable to send request to the Xaman API after multiple retries",
			}
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			body = nil
		}
		c.metrics.recordRequest(method, strconv.Itoa(resp.StatusCode))
		lastResp, lastBody = resp, body

		if resp.StatusCode >= 500 && attempt < c.opts.MaxRetries {
			attempt++
			c.lg.Warn("server error, retrying",
				"endpoint", endpoint, "status", resp.StatusCode, "attempt", attempt)
			if err := c.wait(ctx, attempt); err != nil {
				return nil, nil, err
			}
			continue
		}

		break
	}

	return lastResp, lastBody, nil
}

func (c *httpClient) newRequest(ctx context.Context, method, url string, payload []byte, rc requestConfig) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "xaman-go/"+Version)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rc.credentials {
		req.Header.Set("X-API-Key", c.opts.APIKey)
		req.Header.Set("X-API-Secret", c.opts.APISecret)
	}
	for k, v := range rc.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// wait sleeps RetryDelay * attempt, aborting on cancellation.
func (c *httpClient) wait(ctx context.Context, attempt int) error {
	c.metrics.recordRetry()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.opts.RetryDelay * time.Duration(attempt)):
		return nil
	}
}

func (c *httpClient) requestURL(endpoint string) string {
	base := c.opts.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + endpoint
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return json.Marshal(body)
	}
}

// decodeErrorEnvelope turns a non-success response into an *APIError,
// trying the fatal envelope shape first, then the nested one, then the
// HTTP status text.
func decodeErrorEnvelope(resp *http.Response, body []byte) error {
	var fatal struct {
		Error     bool   `json:"error"`
		Message   string `json:"message"`
		Reference string `json:"reference"`
		Code      int    `json:"code"`
	}
	if err := json.Unmarshal(body, &fatal); err == nil && fatal.Error && fatal.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fatal.Message,
			Reference:  fatal.Reference,
			Code:       fatal.Code,
		}
	}

	var nested struct {
		Error *struct {
			Reference string `json:"reference"`
			Code      int    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message: fmt.Sprintf("error code %d, see Xaman Dev Console, reference: %q",
				nested.Error.Code, nested.Error.Reference),
			Reference: nested.Error.Reference,
			Code:      nested.Error.Code,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
