package course

import (
	"sort"

	"github.com/flightlinehq/courser/internal/geo"
	"github.com/flightlinehq/courser/internal/kml"
	"github.com/flightlinehq/courser/internal/models"
)

// Extract resolves the exact coordinates of every turning point in a raw KML
// course document. The result is sorted ascending by the numeric suffix of
// the marker name (stable for equal keys) and is empty, never nil-with-error,
// when the document holds no usable track or no turning points.
func Extract(doc string) []models.TurningPoint {
	placemarks := kml.Parse(doc)

	track := BuildTrack(placemarks)
	if len(track) < 2 {
		return []models.TurningPoint{}
	}

	markers := Markers(placemarks)
	if len(markers) == 0 {
		return []models.TurningPoint{}
	}
	gates := Gates(placemarks)

	results := make([]models.TurningPoint, 0, len(markers))
	for _, marker := range markers {
		resolved := resolve(track, gates, marker)
		results = append(results, models.TurningPoint{
			Name:      marker.Name,
			Longitude: resolved.Longitude,
			Latitude:  resolved.Latitude,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return markerSeq(results[i].Name) < markerSeq(results[j].Name)
	})

	return results
}

// resolve computes a marker's exact coordinate. With a matched gate it
// returns the first track segment crossing of the gate chord, scanning track
// segments in order. Without a gate, or when the chord never crosses the
// track, it snaps the nominal position to the globally nearest point on the
// track.
func resolve(track []models.Coordinate, gates []models.Gate, marker Marker) models.Coordinate {
	if gate, ok := matchGate(marker, gates); ok {
		for i := 0; i+1 < len(track); i++ {
			if pt, crossed := geo.SegmentIntersection(track[i], track[i+1], gate.Entry, gate.Exit); crossed {
				return pt
			}
		}
	}

	return snapToTrack(track, marker.Nominal)
}

// snapToTrack projects the nominal coordinate onto every track segment and
// keeps the closest projection by squared planar distance.
func snapToTrack(track []models.Coordinate, nominal models.Coordinate) models.Coordinate {
	best := geo.ProjectOntoSegment(track[0], track[1], nominal)
	bestDist := geo.PlanarDistanceSq(best, nominal)
	for i := 1; i+1 < len(track); i++ {
		candidate := geo.ProjectOntoSegment(track[i], track[i+1], nominal)
		if d := geo.PlanarDistanceSq(candidate, nominal); d < bestDist {
			best, bestDist = candidate, d
		}
	}

	return best
}
