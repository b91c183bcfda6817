package query

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/connid"
	"github.com/aisdb/aisdb-go/internal/metrics"
	"github.com/aisdb/aisdb-go/internal/sqltemplate"
	"github.com/aisdb/aisdb-go/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server answers track-vector, validrange, meta, and zones requests over
// WebSocket, one connection handler per client (spec §4.15). All client
// handlers share the one Backend; no handler opens a backend connection
// of its own.
type Server struct {
	Backend   storage.Backend
	Epsilon   float64
	Precision float64
}

// Handler returns the mux.Router serving the query endpoint at "/".
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.serveWS)
	return r
}

func (s *Server) epsilon() float64 {
	if s.Epsilon != 0 {
		return s.Epsilon
	}
	return DefaultEpsilon
}

func (s *Server) precision() float64 {
	if s.Precision != 0 {
		return s.Precision
	}
	return DefaultPrecision
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		aislog.Warnf("query: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	label := connid.Next()

	dialect := sqltemplate.Dialect(s.Backend.Dialect())
	aislog.Infof("query: conn %s: client attached", label)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType == websocket.PingMessage {
			conn.WriteMessage(websocket.PongMessage, nil)
			continue
		}
		if msgType == websocket.CloseMessage {
			return
		}

		req, err := ParseRequest(data)
		if err != nil {
			writeError(conn, fmt.Sprintf("malformed request: %v", err))
			continue
		}

		switch req.MsgType {
		case MsgTrackVectors, MsgTrackVectorsExtra:
			if err := req.Validate(); err != nil {
				writeError(conn, err.Error())
				continue
			}
			if err := s.streamTracks(conn, dialect, req); err != nil {
				aislog.Warnf("query: conn %s: streaming tracks: %v", label, err)
				return
			}
		case MsgValidRange:
			if err := s.streamValidRange(conn, dialect); err != nil {
				aislog.Warnf("query: conn %s: streaming validrange: %v", label, err)
				return
			}
		case MsgMeta:
			if err := s.streamMeta(conn, dialect, req); err != nil {
				aislog.Warnf("query: conn %s: streaming meta: %v", label, err)
				return
			}
		case MsgZones:
			if err := s.streamZones(conn); err != nil {
				aislog.Warnf("query: conn %s: streaming zones: %v", label, err)
				return
			}
		default:
			writeError(conn, fmt.Sprintf("unknown msgtype %q", req.MsgType))
		}
	}
}

func writeFrame(conn *websocket.Conn, v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, encoded)
}

func writeError(conn *websocket.Conn, msg string) {
	writeFrame(conn, map[string]string{"msgtype": "error", "error": msg})
}

func (s *Server) streamTracks(conn *websocket.Conn, dialect sqltemplate.Dialect, req Request) error {
	timer := prometheus.NewTimer(metrics.TrackQueryDuration)
	defer timer.ObserveDuration()

	keys := ResolvePartitions(req.Start, req.End)
	query, args, err := BuildUnionQuery(dialect, keys, req)
	if err != nil {
		return err
	}

	rows, err := s.Backend.DB().Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	count := 0
	src := NewDBRowSource(rows)
	err = GroupTracks(src, func(t *Track) error {
		mask := Simplify(t.X, t.Y, s.epsilon())
		resp := trackVectorResponse{
			MsgType: "track_vector",
			X:       RoundSlice(ApplyMask(t.X, mask), s.precision()),
			Y:       RoundSlice(ApplyMask(t.Y, mask), s.precision()),
			T:       ApplyMask(t.Time, mask),
			Meta:    map[string]string{"mmsi": fmt.Sprintf("%d", t.MMSI)},
		}
		count++
		return writeFrame(conn, resp)
	})
	if err != nil {
		return err
	}
	metrics.TracksReturned.Observe(float64(count))

	return writeFrame(conn, map[string]string{
		"msgtype": "done",
		"status":  fmt.Sprintf("Done. Count: %d", count),
	})
}

type trackVectorResponse struct {
	MsgType string            `json:"msgtype"`
	X       []float64         `json:"x"`
	Y       []float64         `json:"y"`
	T       []int32           `json:"t"`
	Meta    map[string]string `json:"meta"`
}

func (s *Server) streamValidRange(conn *websocket.Conn, dialect sqltemplate.Dialect) error {
	start, end, err := ValidRange(s.Backend.DB(), dialect)
	if err != nil {
		return err
	}
	return writeFrame(conn, map[string]any{
		"msgtype": "validrange",
		"start":   start,
		"end":     end,
	})
}

func (s *Server) streamMeta(conn *websocket.Conn, dialect sqltemplate.Dialect, req Request) error {
	keys := ResolvePartitions(req.Start, req.End)
	metas, err := QueryMeta(s.Backend.DB(), dialect, keys)
	if err != nil {
		return err
	}
	for _, m := range metas {
		if err := writeFrame(conn, m); err != nil {
			return err
		}
	}
	return writeFrame(conn, map[string]string{"msgtype": "doneMetadata"})
}

func (s *Server) streamZones(conn *websocket.Conn) error {
	for _, z := range BuiltinZones {
		frame := map[string]any{
			"msgtype": "zone",
			"x":       z.X,
			"y":       z.Y,
			"t":       []int32{},
			"meta":    map[string]string{"name": z.Name},
		}
		if err := writeFrame(conn, frame); err != nil {
			return err
		}
	}
	return writeFrame(conn, map[string]string{"msgtype": "doneZones"})
}
