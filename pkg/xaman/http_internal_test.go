package xaman

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

const (
	testAPIKey    = "11111111-2222-3333-4444-555555555555"
	testAPISecret = "66666666-7777-8888-9999-aaaaaaaaaaaa"
)

func testOptions(baseURL string) Options {
	return Options{
		APIKey:      testAPIKey,
		APISecret:   testAPISecret,
		BaseURL:     baseURL,
		HTTPTimeout: 5 * time.Second,
		MaxRetries:  3,
		RetryDelay:  time.Millisecond,
	}
}

func newTestSender(t *testing.T, handler http.HandlerFunc) (*httpClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newHTTPClient(testOptions(server.URL), nil, log.NewNoopLogger(), nil), server
}

func TestHTTPClientHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	})

	var out map[string]any
	require.NoError(t, sender.do(context.Background(), http.MethodGet, "platform/ping", nil, &out))

	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "xaman-go/"+Version, got.Get("User-Agent"))
	assert.Equal(t, testAPIKey, got.Get("X-API-Key"))
	assert.Equal(t, testAPISecret, got.Get("X-API-Secret"))
}

func TestHTTPClientRequestOptions(t *testing.T) {
	t.Parallel()

	var got http.Header
	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	})

	var out map[string]any
	err := sender.do(context.Background(), http.MethodGet, "xapp-jwt/authorize", nil, &out,
		withoutCredentials(), withHeader("Authorization", "Bearer abc"))
	require.NoError(t, err)

	assert.Empty(t, got.Get("X-API-Key"))
	assert.Empty(t, got.Get("X-API-Secret"))
	assert.Equal(t, "Bearer abc", got.Get("Authorization"))
}

func TestHTTPClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	t.Run("recovers within the budget", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"pong":true}`))
		})

		var out PingResponse
		require.NoError(t, sender.do(context.Background(), http.MethodGet, "platform/ping", nil, &out))
		assert.True(t, out.Pong)
		assert.Equal(t, int32(3), calls.Load(), "two retries for two failures")
	})

	t.Run("budget exhausted returns the last failure", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		var out PingResponse
		err := sender.do(context.Background(), http.MethodGet, "platform/ping", nil, &out)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
		assert.Equal(t, int32(4), calls.Load(), "initial attempt plus MaxRetries")
	})

	t.Run("client errors are never retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		})

		var out PingResponse
		err := sender.do(context.Background(), http.MethodGet, "platform/ping", nil, &out)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestHTTPClientTransportFailure(t *testing.T) {
	t.Parallel()

	opts := testOptions("http://127.0.0.1:1")
	sender := newHTTPClient(opts, nil, log.NewNoopLogger(), nil)

	var out PingResponse
	err := sender.do(context.Background(), http.MethodGet, "platform/ping", nil, &out)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
}

func TestHTTPClientTransportFailureAfterServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	base, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":true,"message":"stale failure","reference":"ref-stale","code":500}`))
			return
		}
		// Drop the connection without answering.
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		conn.Close()
	})

	// Fresh connections per attempt, so the dropped one is not retried
	// inside the transport itself.
	opts := base.opts
	opts.MaxRetries = 1
	hc := &http.Client{
		Timeout:   opts.HTTPTimeout,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	sender := newHTTPClient(opts, hc, log.NewNoopLogger(), nil)

	var out PingResponse
	err := sender.do(context.Background(), http.MethodGet, "platform/ping", nil, &out)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "unable to send request to the Xaman API after multiple retries", apiErr.Message,
		"the terminal transport failure wins over an earlier response's envelope")
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClientErrorEnvelopes(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name          string
		status        int
		body          string
		wantMessage   string
		wantReference string
		wantCode      int
	}{
		{
			name:          "fatal envelope",
			status:        http.StatusForbidden,
			body:          `{"error":true,"message":"Invalid credentials","reference":"ref-1","code":813}`,
			wantMessage:   "Invalid credentials",
			wantReference: "ref-1",
			wantCode:      813,
		},
		{
			name:          "nested envelope",
			status:        http.StatusNotFound,
			body:          `{"error":{"reference":"ref-2","code":404}}`,
			wantMessage:   `error code 404, see Xaman Dev Console, reference: "ref-2"`,
			wantReference: "ref-2",
			wantCode:      404,
		},
		{
			name:        "undecodable body falls back to status text",
			status:      http.StatusBadGateway,
			body:        `<html>nope</html>`,
			wantMessage: "Bad Gateway",
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			var out map[string]any
			err := sender.do(context.Background(), http.MethodGet, "platform/ping", nil, &out)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.wantMessage, apiErr.Message)
			assert.Equal(t, tc.wantReference, apiErr.Reference)
			assert.Equal(t, tc.wantCode, apiErr.Code)
		})
	}
}

func TestHTTPClientEmptyBody(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"null", "null"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})

			var out map[string]any
			err := sender.do(context.Background(), http.MethodGet, "platform/ping", nil, &out)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Contains(t, apiErr.Message, "unable to deserialize")
		})
	}
}

func TestHTTPClientCancellation(t *testing.T) {
	t.Parallel()

	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	sender.opts.RetryDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	var out map[string]any
	err := sender.do(ctx, http.MethodGet, "platform/ping", nil, &out)
	assert.ErrorIs(t, err, context.Canceled)
}
