package xaman_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-community/xaman-go/pkg/xaman"
)

const (
	testAPIKeyExt    = "11111111-2222-3333-4444-555555555555"
	testAPISecretExt = "66666666-7777-8888-9999-aaaaaaaaaaaa"
	testPayloadUUID  = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *xaman.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := xaman.New(xaman.Options{
		APIKey:           testAPIKeyExt,
		APISecret:        testAPISecretExt,
		BaseURL:          server.URL,
		PayloadWSBaseURL: "wss://xaman.app/sign",
		HTTPTimeout:      5 * time.Second,
		MaxRetries:       0,
		RetryDelay:       time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func payloadDetailsBody(exists bool) string {
	body := map[string]any{
		"meta": map[string]any{
			"exists": exists,
			"uuid":   testPayloadUUID,
			"signed": true,
		},
		"application": map[string]any{"name": "demo"},
		"payload": map[string]any{
			"tx_type":      "SignIn",
			"request_json": map[string]any{"TransactionType": "SignIn"},
		},
		"response": map[string]any{
			"account": "rwiETSee2wMz3SBnAG8hkMsCgvGy9LWbZ1",
			"txid":    "A17E4DEAD62BF705895A3E72CF3281ECD74D4FFE1DD6697A8E84FB6E50Fem73",
		},
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func TestPayloadCreate(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"uuid": "` + testPayloadUUID + `",
			"next": {"always": "https://xaman.app/sign/` + testPayloadUUID + `"},
			"refs": {"qr_png": "https://xaman.app/sign/` + testPayloadUUID + `_q.png"},
			"pushed": true
		}`))
	})

	created, err := client.Payload.Create(context.Background(), xaman.NewTransaction("SignIn"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/platform/payload", gotPath)
	txjson, ok := gotBody["txjson"].(map[string]any)
	require.True(t, ok, "transaction templates are wrapped into a txjson payload")
	assert.Equal(t, "SignIn", txjson["TransactionType"])

	assert.Equal(t, testPayloadUUID, created.UUID)
	assert.True(t, created.Pushed)
	assert.Contains(t, created.Next.Always, created.UUID)
	assert.Contains(t, created.Refs.QrPNG, created.UUID)
}

func TestPayloadCreateUnsupportedType(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.Payload.Create(context.Background(), 42)
	var valErr *xaman.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestPayloadGet(t *testing.T) {
	t.Parallel()

	t.Run("resolved payload", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/platform/payload/"+testPayloadUUID, r.URL.Path)
			w.Write([]byte(payloadDetailsBody(true)))
		})

		details, err := client.Payload.Get(context.Background(), testPayloadUUID)
		require.NoError(t, err)
		assert.Equal(t, testPayloadUUID, details.Meta.UUID)
		assert.True(t, details.Meta.Signed)
		assert.Equal(t, "SignIn", details.Payload.TxType)
		require.NotNil(t, details.Response)
		assert.Equal(t, "rwiETSee2wMz3SBnAG8hkMsCgvGy9LWbZ1", details.Response.Account)
	})

	t.Run("404 is the uniform not-found kind", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"reference":"ref","code":404}}`))
		})

		_, err := client.Payload.Get(context.Background(), testPayloadUUID)
		assert.ErrorIs(t, err, xaman.ErrPayloadNotFound)

		var nfErr *xaman.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, testPayloadUUID, nfErr.UUID)

		assert.Nil(t, client.Payload.TryGet(context.Background(), testPayloadUUID))
	})

	t.Run("tombstone response is not-found too", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payloadDetailsBody(false)))
		})

		_, err := client.Payload.Get(context.Background(), testPayloadUUID)
		assert.ErrorIs(t, err, xaman.ErrPayloadNotFound)
	})
}

func TestPayloadGetByCustomIdentifier(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/platform/payload/ci/order-17", r.URL.Path)
		w.Write([]byte(payloadDetailsBody(true)))
	})

	details, err := client.Payload.GetByCustomIdentifier(context.Background(), "order-17")
	require.NoError(t, err)
	assert.Equal(t, testPayloadUUID, details.Meta.UUID)
}

func TestPayloadCancel(t *testing.T) {
	t.Parallel()

	var gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{
			"result": {"cancelled": true, "reason": "OK"},
			"meta": {"exists": true, "uuid": "` + testPayloadUUID + `"}
		}`))
	})

	deleted, err := client.Payload.Cancel(context.Background(), testPayloadUUID)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.True(t, deleted.Result.Cancelled)
	assert.Equal(t, "OK", deleted.Result.Reason)
}

func TestPayloadCancelNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"reference":"ref","code":404}}`))
	})

	_, err := client.Payload.Cancel(context.Background(), testPayloadUUID)
	assert.True(t, errors.Is(err, xaman.ErrPayloadNotFound))
	assert.Nil(t, client.Payload.TryCancel(context.Background(), testPayloadUUID))
}
