// Package course reconstructs a flyable track from a hand-authored KML course
// document and resolves the exact crossing coordinate of every turning point.
//
// The pipeline is a pure function of the document text: parse placemarks,
// stitch the main track, match each turning-point marker to its nearest gate,
// intersect the gate chord with the track, and fall back to nearest-point
// snapping when no crossing exists.
package course

import (
	"github.com/flightlinehq/courser/internal/geo"
	"github.com/flightlinehq/courser/internal/models"
)

const (
	// Two-point lines shorter than this are decorative connectors between
	// turning points, not part of the flyable course.
	dashedConnectorMaxMeters = 500.0

	// Segments whose start lies within this distance of the track's current
	// end are considered connected and joined without duplicating the point.
	stitchToleranceMeters = 50.0
)

// IsDashedConnector reports whether a line is a decorative dashed connector:
// exactly two points less than 500 m apart (great-circle).
func IsDashedConnector(line []models.Coordinate) bool {
	if len(line) != 2 {
		return false
	}

	return geo.Haversine(line[0], line[1]) < dashedConnectorMaxMeters
}

// BuildTrack concatenates all main line segments into one ordered polyline.
// Dashed connectors and gate-shaped three-point lines are excluded;
// everything else is kept in file order with no re-ordering or reversal.
// When a segment starts within 50 m of the track end its duplicate first
// point is skipped, otherwise the segment is appended wholesale and the track
// continues visually disjoint.
func BuildTrack(placemarks []models.Placemark) []models.Coordinate {
	var track []models.Coordinate
	for _, pm := range placemarks {
		if !pm.IsLine() || len(pm.Line) == gatePointCount || IsDashedConnector(pm.Line) {
			continue
		}

		if len(track) == 0 {
			track = append(track, pm.Line...)
			continue
		}

		if geo.Haversine(track[len(track)-1], pm.Line[0]) < stitchToleranceMeters {
			track = append(track, pm.Line[1:]...)
		} else {
			track = append(track, pm.Line...)
		}
	}

	return track
}
