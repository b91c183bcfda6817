package receiver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/connid"
	"github.com/aisdb/aisdb-go/internal/socket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// FanoutServer accepts WebSocket clients and forwards every datagram
// received from MulticastAddr to each, as a text frame (spec §4.14).
// A client write error drops that client only.
type FanoutServer struct {
	MulticastAddr string
}

// Handler returns the mux.Router serving WebSocket fan-out at "/".
func (s *FanoutServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.serveWS)
	return r
}

func (s *FanoutServer) serveWS(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		aislog.Warnf("receiver: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	label := connid.Next()

	mcConn, err := socket.Join(s.MulticastAddr)
	if err != nil {
		aislog.Errorf("receiver: conn %s: joining fan-out multicast group: %v", label, err)
		return
	}
	defer mcConn.Close()

	aislog.Infof("receiver: conn %s: websocket client attached", label)
	buf := make([]byte, maxDatagramSize)
	for {
		n, _, err := mcConn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, buf[:n]); err != nil {
			aislog.Warnf("receiver: conn %s: websocket client write failed, dropping client: %v", label, err)
			return
		}
	}
}
