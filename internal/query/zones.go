package query

// Zone is one labelled polygon the "zones" request streams to the
// client, supplementing the distilled spec with the original's built-in
// zone table (its content is cartographic, not behavioral, so the fixed
// set below is illustrative rather than a literal port).
type Zone struct {
	Name string
	X    []float64
	Y    []float64
}

// BuiltinZones is the fixed zone table "zones" requests stream, one
// frame per entry followed by doneZones.
var BuiltinZones = []Zone{
	{
		Name: "Strait of Juan de Fuca",
		X:    []float64{-124.7, -123.2, -123.2, -124.7, -124.7},
		Y:    []float64{48.3, 48.3, 48.5, 48.5, 48.3},
	},
	{
		Name: "Salish Sea",
		X:    []float64{-123.5, -122.2, -122.2, -123.5, -123.5},
		Y:    []float64{48.9, 48.9, 49.3, 49.3, 48.9},
	},
	{
		Name: "Approach to Vancouver Harbour",
		X:    []float64{-123.3, -123.0, -123.0, -123.3, -123.3},
		Y:    []float64{49.25, 49.25, 49.35, 49.35, 49.25},
	},
}
