// Package query implements the track-query server: request parsing,
// partition resolution, lazy row-to-track grouping, geometry
// simplification, float rounding, and WebSocket framing (spec §4.15).
package query

import (
	"encoding/json"
	"errors"
)

// MsgType selects which request grammar a client message follows.
type MsgType string

const (
	MsgTrackVectors      MsgType = "track_vectors"
	MsgTrackVectorsExtra MsgType = "track_vectors_extra"
	MsgValidRange        MsgType = "validrange"
	MsgMeta              MsgType = "meta"
	MsgZones             MsgType = "zones"
)

// Area is the inclusive bounding box a track/zone request is scoped to.
type Area struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

// Request is the JSON grammar clients send over the WebSocket connection
// (spec §4.15).
type Request struct {
	MsgType MsgType `json:"msgtype"`
	Start   int32   `json:"start"`
	End     int32   `json:"end"`
	Area    Area    `json:"area"`
}

// ErrInvalidRange means start/end or the area bounds fail the ordering
// invariant spec §4.15 requires for track requests.
var ErrInvalidRange = errors.New("query: invalid time or area range")

// ParseRequest decodes one WebSocket text/binary frame into a Request.
func ParseRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate checks the ordering invariants track requests must satisfy:
// start < end, x0 < x1, y0 < y1.
func (r Request) Validate() error {
	if r.Start >= r.End {
		return ErrInvalidRange
	}
	if r.Area.X0 >= r.Area.X1 {
		return ErrInvalidRange
	}
	if r.Area.Y0 >= r.Area.Y1 {
		return ErrInvalidRange
	}
	return nil
}

// IsTrackRequest reports whether msgtype needs the time/area validation
// track_vectors and track_vectors_extra share.
func (m MsgType) IsTrackRequest() bool {
	return m == MsgTrackVectors || m == MsgTrackVectorsExtra
}
