package models

// TurningPoint is a resolved course waypoint: the exact coordinate where the
// matched gate crosses the reconstructed track (or the nearest point on the
// track when no gate crossing exists).
type TurningPoint struct {
	Name      string  // Marker name as authored, e.g. "TP 4".
	Longitude float64 // Resolved longitude in degrees.
	Latitude  float64 // Resolved latitude in degrees.
	Locality  string  // Optional human-readable locality, filled by the annotator.
}
