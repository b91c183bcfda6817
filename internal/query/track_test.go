package query

import "testing"

type sliceRowSource struct {
	rows []Row
	pos  int
}

func (s *sliceRowSource) Next() (Row, bool, error) {
	if s.pos >= len(s.rows) {
		return Row{}, false, nil
	}
	r := s.rows[s.pos]
	s.pos++
	return r, true, nil
}

func TestGroupTracksSegmentsByMMSI(t *testing.T) {
	src := &sliceRowSource{rows: []Row{
		{MMSI: 1, Time: 10, X: 1, Y: 1},
		{MMSI: 1, Time: 20, X: 2, Y: 2},
		{MMSI: 2, Time: 5, X: 3, Y: 3},
		{MMSI: 2, Time: 15, X: 4, Y: 4},
		{MMSI: 2, Time: 25, X: 5, Y: 5},
	}}

	var tracks []*Track
	if err := GroupTracks(src, func(t *Track) error {
		tracks = append(tracks, t)
		return nil
	}); err != nil {
		t.Fatalf("GroupTracks: %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].MMSI != 1 || tracks[0].Len() != 2 {
		t.Fatalf("track 0: mmsi=%d len=%d, want mmsi=1 len=2", tracks[0].MMSI, tracks[0].Len())
	}
	if tracks[1].MMSI != 2 || tracks[1].Len() != 3 {
		t.Fatalf("track 1: mmsi=%d len=%d, want mmsi=2 len=3", tracks[1].MMSI, tracks[1].Len())
	}
}

func TestGroupTracksEmptySourceEmitsNothing(t *testing.T) {
	src := &sliceRowSource{}
	called := false
	if err := GroupTracks(src, func(t *Track) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("GroupTracks: %v", err)
	}
	if called {
		t.Fatal("empty source should not emit any track")
	}
}
