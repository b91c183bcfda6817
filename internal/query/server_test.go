package query

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/aisdb/aisdb-go/internal/batch"
	"github.com/aisdb/aisdb-go/internal/storage"
	"github.com/aisdb/aisdb-go/pkg/report"
)

func newTestBackend(t *testing.T) storage.Backend {
	t.Helper()
	backend, err := storage.ConnectEmbedded(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	w := batch.NewWriter(backend)
	entries := []report.Dynamic{
		{MMSI: 1, Epoch: 1638396000, Longitude: -123.1, Latitude: 49.1, Class: report.ClassA, Source: "test"},
		{MMSI: 1, Epoch: 1638396100, Longitude: -123.2, Latitude: 49.2, Class: report.ClassA, Source: "test"},
		{MMSI: 2, Epoch: 1638396050, Longitude: -123.3, Latitude: 49.3, Class: report.ClassB, Source: "test"},
	}
	require.NoError(t, w.FlushDynamic(context.Background(), entries))
	return backend
}

func dialQueryServer(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServerStreamsTrackVectorsThenDone(t *testing.T) {
	backend := newTestBackend(t)
	s := &Server{Backend: backend}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialQueryServer(t, ts)
	req := `{"msgtype":"track_vectors","start":1638395000,"end":1638397000,"area":{"x0":-180,"x1":180,"y0":-90,"y1":90}}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(req)))

	sawDone := false
	for i := 0; i < 10; i++ {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		if strings.Contains(string(data), `"msgtype":"done"`) {
			sawDone = true
			break
		}
	}
	require.True(t, sawDone, "expected a done frame to terminate the track stream")
}

func TestServerStreamsValidRange(t *testing.T) {
	backend := newTestBackend(t)
	s := &Server{Backend: backend}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialQueryServer(t, ts)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"msgtype":"validrange"}`)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(data), `"msgtype":"validrange"`)
}

func TestServerStreamsZones(t *testing.T) {
	backend := newTestBackend(t)
	s := &Server{Backend: backend}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialQueryServer(t, ts)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"msgtype":"zones"}`)))

	sawDone := false
	for i := 0; i < len(BuiltinZones)+1; i++ {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		if strings.Contains(string(data), `"doneZones"`) {
			sawDone = true
			break
		}
	}
	require.True(t, sawDone, "expected a doneZones frame")
}

func TestServerRejectsInvalidTrackRange(t *testing.T) {
	backend := newTestBackend(t)
	s := &Server{Backend: backend}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialQueryServer(t, ts)
	req := `{"msgtype":"track_vectors","start":100,"end":1,"area":{"x0":-1,"x1":1,"y0":-1,"y1":1}}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(req)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(data), `"msgtype":"error"`)
}
