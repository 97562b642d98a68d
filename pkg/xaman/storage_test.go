package xaman_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Parallel()

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/platform/app-storage", r.URL.Path)
			w.Write([]byte(`{"application": {"name": "demo", "uuidv4": "` + testPayloadUUID + `"}, "data": {"count": 3}}`))
		})

		storage, err := client.Storage.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "demo", storage.Application.Name)
		assert.JSONEq(t, `{"count": 3}`, string(storage.Data))
	})

	t.Run("store sends the document verbatim", func(t *testing.T) {
		t.Parallel()

		var gotBody []byte
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"application": {"name": "demo"}, "stored": true}`))
		})

		update, err := client.Storage.Store(context.Background(), []byte(`{"count": 4}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"count": 4}`, string(gotBody))
		assert.True(t, update.Stored)
	})

	t.Run("clear", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.Write([]byte(`{"application": {"name": "demo"}, "stored": true}`))
		})

		update, err := client.Storage.Clear(context.Background())
		require.NoError(t, err)
		assert.True(t, update.Stored)
	})
}
