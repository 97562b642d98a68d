package xrpl_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-community/xaman-go/pkg/xrpl"
)

const testTxHash = "A17E4DEAD62BF705895A3E72CF3DD9E49D910F0FB780D6714A7B213E699A10F9"

// newNodeServer starts a WebSocket server answering every command with the
// response produced by respond. The returned counter tracks how many
// commands were received.
func newNodeServer(t *testing.T, respond func(command map[string]any) string) (url string, queries *atomic.Int32, close func()) {
	t.Helper()

	var count atomic.Int32
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for {
			var command map[string]any
			if err := conn.ReadJSON(&command); err != nil {
				return
			}
			count.Add(1)
			if err := conn.WriteMessage(websocket.TextMessage, []byte(respond(command))); err != nil {
				return
			}
		}
	}))

	return "ws://" + server.Listener.Addr().String(), &count, server.Close
}

func TestClientGetTransaction(t *testing.T) {
	t.Parallel()

	url, _, closeServer := newNodeServer(t, func(command map[string]any) string {
		assert.Equal(t, "tx", command["command"])
		assert.Equal(t, testTxHash, command["transaction"])
		assert.NotEmpty(t, command["id"])
		return `{"result":{"validated":true,"status":"success",` +
			`"meta":{"TransactionResult":"tesSUCCESS","delivered_amount":"2500000"},` +
			`"tx":{"TransactionType":"Payment"}}}`
	})
	defer closeServer()

	client := xrpl.NewClient(url, nil)
	tx, err := client.GetTransaction(context.Background(), testTxHash)
	require.NoError(t, err)

	assert.True(t, tx.Validated)
	assert.Equal(t, "success", tx.Status)
	require.NotNil(t, tx.Meta)
	assert.Equal(t, "tesSUCCESS", tx.Meta.TransactionResult)
	assert.Equal(t, "Payment", tx.Tx["TransactionType"])
	assert.NotEmpty(t, tx.Raw)

	amount, currency := xrpl.ParseDeliveredAmount(tx.Meta.DeliveredAmount)
	assert.Equal(t, "XRP", currency)
	assert.Equal(t, "2.5", amount.String())
}

func TestClientGetTransactionNotFound(t *testing.T) {
	t.Parallel()

	url, _, closeServer := newNodeServer(t, func(map[string]any) string {
		return `{"result":{"error":"txnNotFound","status":"error"}}`
	})
	defer closeServer()

	client := xrpl.NewClient(url, nil)
	_, err := client.GetTransaction(context.Background(), testTxHash)
	require.Error(t, err)

	assert.ErrorIs(t, err, xrpl.ErrTxNotFound)
	var nf *xrpl.TxNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, testTxHash, nf.Hash)
}

func TestClientTopLevelError(t *testing.T) {
	t.Parallel()

	url, _, closeServer := newNodeServer(t, func(map[string]any) string {
		return `{"error":"unknownCmd","status":"error"}`
	})
	defer closeServer()

	client := xrpl.NewClient(url, nil)
	_, err := client.GetTransaction(context.Background(), testTxHash)
	require.Error(t, err)
	assert.ErrorIs(t, err, xrpl.ErrQuery)
	assert.NotErrorIs(t, err, xrpl.ErrTxNotFound)
}

func TestClientDialFailure(t *testing.T) {
	t.Parallel()

	client := xrpl.NewClient("ws://127.0.0.1:1", nil)
	_, err := client.GetTransaction(context.Background(), testTxHash)
	require.Error(t, err)
	assert.ErrorIs(t, err, xrpl.ErrQuery)
}

func TestClientIsTransactionValidated(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name     string
		response string
		want     bool
	}{
		{"validated", `{"result":{"validated":true,"status":"success"}}`, true},
		{"not yet validated", `{"result":{"validated":false,"status":"success"}}`, false},
		{"not found", `{"result":{"error":"txnNotFound"}}`, false},
		{"node error", `{"error":"tooBusy"}`, false},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			url, _, closeServer := newNodeServer(t, func(map[string]any) string {
				return tc.response
			})
			defer closeServer()

			client := xrpl.NewClient(url, nil)
			assert.Equal(t, tc.want, client.IsTransactionValidated(context.Background(), testTxHash))
		})
	}
}

func TestClientGetAccountInfo(t *testing.T) {
	t.Parallel()

	url, _, closeServer := newNodeServer(t, func(command map[string]any) string {
		assert.Equal(t, "account_info", command["command"])
		assert.Equal(t, "validated", command["ledger_index"])
		return `{"result":{"validated":true,"account_data":` +
			`{"Account":"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh","Balance":"1000000","OwnerCount":2,"Sequence":7}}}`
	})
	defer closeServer()

	client := xrpl.NewClient(url, nil)
	info, err := client.GetAccountInfo(context.Background(), "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
	require.NoError(t, err)

	assert.True(t, info.Validated)
	assert.Equal(t, "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", info.AccountData.Account)
	assert.Equal(t, "1000000", info.AccountData.Balance)
	assert.Equal(t, uint32(2), info.AccountData.OwnerCount)
	assert.Equal(t, uint32(7), info.AccountData.Sequence)
}

func TestClientPollForTransaction(t *testing.T) {
	t.Parallel()

	t.Run("validated on third attempt", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		url, queries, closeServer := newNodeServer(t, func(map[string]any) string {
			switch calls.Add(1) {
			case 1:
				return `{"result":{"error":"txnNotFound"}}`
			case 2:
				return `{"result":{"validated":false,"status":"success"}}`
			default:
				return `{"result":{"validated":true,"status":"success"}}`
			}
		})
		defer closeServer()

		client := xrpl.NewClient(url, nil)
		tx, err := client.PollForTransaction(context.Background(), testTxHash, 10, time.Millisecond)
		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.True(t, tx.Validated)
		assert.Equal(t, int32(3), queries.Load(), "polling must stop at the validated result")
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		t.Parallel()

		url, queries, closeServer := newNodeServer(t, func(map[string]any) string {
			return `{"result":{"error":"txnNotFound"}}`
		})
		defer closeServer()

		client := xrpl.NewClient(url, nil)
		tx, err := client.PollForTransaction(context.Background(), testTxHash, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Nil(t, tx)
		assert.Equal(t, int32(3), queries.Load(), "exactly maxAttempts queries")
	})

	t.Run("other ledger errors propagate", func(t *testing.T) {
		t.Parallel()

		url, queries, closeServer := newNodeServer(t, func(map[string]any) string {
			return `{"error":"tooBusy"}`
		})
		defer closeServer()

		client := xrpl.NewClient(url, nil)
		_, err := client.PollForTransaction(context.Background(), testTxHash, 5, time.Millisecond)
		require.Error(t, err)
		assert.ErrorIs(t, err, xrpl.ErrQuery)
		assert.Equal(t, int32(1), queries.Load(), "no retry on hard errors")
	})

	t.Run("cancellation aborts the wait", func(t *testing.T) {
		t.Parallel()

		url, _, closeServer := newNodeServer(t, func(map[string]any) string {
			return `{"result":{"error":"txnNotFound"}}`
		})
		defer closeServer()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		client := xrpl.NewClient(url, nil)
		start := time.Now()
		_, err := client.PollForTransaction(ctx, testTxHash, 5, time.Hour)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}
