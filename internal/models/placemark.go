package models

// Placemark is a named geometric record extracted from a course document.
// It holds either a line (ordered sequence of at least two coordinates) or a
// single point, never both.
type Placemark struct {
	Name  string       // Name as authored, trimmed; empty if absent.
	Line  []Coordinate // LineString geometry, nil for point placemarks.
	Point *Coordinate  // Point geometry, nil for line placemarks.
}

// IsLine reports whether the placemark carries a LineString geometry.
func (p Placemark) IsLine() bool {
	return len(p.Line) > 0
}

// Gate is a short line crossing the course at a turning point. Entry and exit
// form the chord tested for intersection with the track; the center is used
// only when matching a gate to a turning-point marker.
type Gate struct {
	Entry  Coordinate
	Center Coordinate
	Exit   Coordinate
}
