package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/internal/stream"
)

// slowFirstFetcher delays only its first call
type slowFirstFetcher struct {
	delay time.Duration
	calls atomic.Int32
}

func (f *slowFirstFetcher) FetchWalletData(ctx context.Context, _ string) (*model.WalletData, error) {
	if f.calls.Add(1) == 1 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return sampleWallet(), nil
}

func newStreamServer(t *testing.T) (*httptest.Server, *stream.Hub) {
	t.Helper()
	hub := stream.NewHub()
	h := NewStreamHandler(context.Background(), &fakeFetcher{data: sampleWallet()}, hub,
		"https://solscan.io", layout.Options{TickInterval: time.Millisecond}, nil)
	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	t.Cleanup(func() {
		hub.CloseAll()
		srv.Close()
	})
	return srv, hub
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f map[string]json.RawMessage
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestStreamHandler_GraphFrameFirst(t *testing.T) {
	t.Parallel()

	srv, _ := newStreamServer(t)
	conn := dial(t, srv, "address="+address+"&width=400&height=300")

	f := readFrame(t, conn)
	assert.JSONEq(t, `"graph"`, string(f["type"]))

	var data stream.GraphData
	require.NoError(t, json.Unmarshal(f["data"], &data))
	assert.Equal(t, address, data.Address)
	assert.Len(t, data.Graph.Nodes, 5)
	assert.Len(t, data.Positions, 5)

	f = readFrame(t, conn)
	assert.JSONEq(t, `"tick"`, string(f["type"]))
}

func TestStreamHandler_SupersedesSameClient(t *testing.T) {
	t.Parallel()

	srv, hub := newStreamServer(t)

	first := dial(t, srv, "address="+address+"&client=tab-1")
	readFrame(t, first)

	second := dial(t, srv, "address="+address+"&client=tab-1")
	readFrame(t, second)

	// the superseded connection is closed by the server
	require.NoError(t, first.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		if _, _, err := first.ReadMessage(); err != nil {
			break
		}
	}
	assert.Eventually(t, func() bool { return hub.Len() == 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestStreamHandler_RejectsBeforeUpgrade(t *testing.T) {
	t.Parallel()

	srv, _ := newStreamServer(t)

	resp, err := http.Get(srv.URL + "/?address=nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/?address=" + address + "&width=-1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStreamHandler_LateStaleQueryIsDiscarded(t *testing.T) {
	t.Parallel()

	hub := stream.NewHub()
	h := NewStreamHandler(context.Background(), &slowFirstFetcher{delay: 500 * time.Millisecond}, hub,
		"https://solscan.io", layout.Options{TickInterval: time.Millisecond}, nil)
	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	t.Cleanup(func() {
		hub.CloseAll()
		srv.Close()
	})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?client=tab&address=" + address

	type result struct {
		conn   *websocket.Conn
		status int
		err    error
	}
	older := make(chan result, 1)
	go func() {
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		r := result{conn: conn, err: err}
		if resp != nil {
			r.status = resp.StatusCode
		}
		older <- r
	}()

	// the newer query is issued while the older one is still fetching
	time.Sleep(100 * time.Millisecond)
	newer := dial(t, srv, "client=tab&address="+address)
	readFrame(t, newer)

	select {
	case r := <-older:
		if r.conn != nil {
			r.conn.Close()
		}
		require.Error(t, r.err)
		assert.Equal(t, http.StatusConflict, r.status)
	case <-time.After(5 * time.Second):
		t.Fatal("older query did not resolve")
	}

	// the newer session is still live
	require.NoError(t, newer.WriteJSON(stream.Message{Type: stream.MsgPan, DX: 1, DY: 1}))
	require.NoError(t, newer.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var f map[string]json.RawMessage
		require.NoError(t, newer.ReadJSON(&f))
		if string(f["type"]) == `"transform"` {
			break
		}
	}
	assert.Equal(t, 1, hub.Len())
}
