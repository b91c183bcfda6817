package query

// Track is one vessel's grouped row set (spec §3). Vector keys always
// include time, longitude, latitude, sog, cog; all vectors in a track
// have equal length. GroupTracks creates Meta empty and does not fill it:
// Row carries no per-vessel metadata columns.
type Track struct {
	Meta map[string]string
	Time []int32
	X    []float64 // longitude
	Y    []float64 // latitude
	SOG  []float64
	COG  []float64
	MMSI uint32
}

// Row is one UNION-query result row, in the column order
// BuildUnionQuery projects.
type Row struct {
	MMSI uint32
	Time int32
	X    float64
	Y    float64
	SOG  float64
	COG  float64
}

func newTrack(mmsi uint32) *Track {
	return &Track{
		Meta: map[string]string{},
		MMSI: mmsi,
	}
}

func (t *Track) append(r Row) {
	t.Time = append(t.Time, r.Time)
	t.X = append(t.X, r.X)
	t.Y = append(t.Y, r.Y)
	t.SOG = append(t.SOG, r.SOG)
	t.COG = append(t.COG, r.COG)
}

// Len reports the number of points in the track.
func (t *Track) Len() int { return len(t.Time) }

// RowSource yields rows in (mmsi, time) order, spec §4.15's contract the
// grouping generator depends on. Implementations typically wrap a
// *sql.Rows cursor in 50,000-row chunks.
type RowSource interface {
	// Next returns the next row, or ok=false at end of cursor.
	Next() (row Row, ok bool, err error)
}

// GroupTracks consumes src and invokes emit once per contiguous mmsi
// run, per spec §4.15's streaming group-by: "if current mmsi is zero,
// set it; if the row's mmsi equals current, append; if it differs, emit
// the current track and start a new one; on end-of-cursor, emit the
// final track if non-empty." This assumes src is ordered by (mmsi, time)
// — violating that invariant produces incorrectly segmented tracks.
func GroupTracks(src RowSource, emit func(*Track) error) error {
	var current *Track

	for {
		row, ok, err := src.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		if current == nil {
			current = newTrack(row.MMSI)
		} else if row.MMSI != current.MMSI {
			if err := emit(current); err != nil {
				return err
			}
			current = newTrack(row.MMSI)
		}
		current.append(row)
	}

	if current != nil && current.Len() > 0 {
		return emit(current)
	}
	return nil
}
