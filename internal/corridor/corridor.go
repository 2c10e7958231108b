// Package corridor derives competition corridors from a reconstructed course
// track: two parallel polylines at a fixed offset from the track, plus
// perpendicular distance markers placed after the start point and after each
// turning point.
package corridor

import (
	"math"
	"sort"

	"github.com/flightlinehq/courser/internal/course"
	"github.com/flightlinehq/courser/internal/geo"
	"github.com/flightlinehq/courser/internal/models"
)

// DefaultWidthMeters is the standard corridor half-width used by organizers.
const DefaultWidthMeters = 300.0

const nauticalMileMeters = 1852.0

// Lead distances for the perpendicular markers, in nautical miles.
const (
	startPointLeadNM   = 5
	turningPointLeadNM = 1
)

// Lines returns the left and right corridor polylines at the given offset
// from the track. Offsets are taken perpendicular to the local bearing; at
// interior vertices the bearings of the adjoining segments are averaged so
// the corridor stays smooth through turns. A track with fewer than two points
// yields nil corridors.
func Lines(track []models.Coordinate, width float64) (left, right []models.Coordinate) {
	if len(track) < 2 {
		return nil, nil
	}

	left = make([]models.Coordinate, 0, len(track))
	right = make([]models.Coordinate, 0, len(track))
	for i, pt := range track {
		bearing := bearingAt(track, i)
		left = append(left, geo.Offset(pt, math.Mod(bearing+270, 360), width))
		right = append(right, geo.Offset(pt, math.Mod(bearing+90, 360), width))
	}

	return left, right
}

// bearingAt returns the local track bearing at vertex i: the outgoing bearing
// at the first vertex, the incoming one at the last, and the wrap-aware
// average of both elsewhere.
func bearingAt(track []models.Coordinate, i int) float64 {
	switch i {
	case 0:
		return geo.InitialBearing(track[0], track[1])
	case len(track) - 1:
		return geo.InitialBearing(track[i-1], track[i])
	}

	in := geo.InitialBearing(track[i-1], track[i])
	out := geo.InitialBearing(track[i], track[i+1])

	diff := out - in
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}

	return math.Mod(in+diff/2+360, 360)
}

// Marker is a perpendicular chord across the corridor at a fixed distance
// along the track after a named reference point.
type Marker struct {
	Name  string
	Chord [2]models.Coordinate
}

// DistanceMarkers computes the perpendicular corridor markers: one 5 NM after
// the "SP" start point and one 1 NM after each turning-point marker, in
// turning-point order. Reference points that cannot be placed on the track
// are skipped.
func DistanceMarkers(placemarks []models.Placemark, track []models.Coordinate, width float64) []Marker {
	if len(track) < 2 {
		return nil
	}

	var markers []Marker
	if sp, ok := startPoint(placemarks); ok {
		if m, placed := markerAfter(track, sp, startPointLeadNM*nauticalMileMeters, width); placed {
			m.Name = "5NM after SP"
			markers = append(markers, m)
		}
	}

	tps := course.Markers(placemarks)
	sort.SliceStable(tps, func(i, j int) bool { return tps[i].Seq < tps[j].Seq })

	for _, tp := range tps {
		if m, placed := markerAfter(track, tp.Nominal, turningPointLeadNM*nauticalMileMeters, width); placed {
			m.Name = "1NM after " + tp.Name
			markers = append(markers, m)
		}
	}

	return markers
}

// startPoint returns the coordinate of the "SP" point placemark, if present.
func startPoint(placemarks []models.Placemark) (models.Coordinate, bool) {
	for _, pm := range placemarks {
		if pm.Point != nil && pm.Name == "SP" {
			return *pm.Point, true
		}
	}

	return models.Coordinate{}, false
}

// markerAfter walks the given distance along the track starting from the
// vertex nearest to ref, then builds the perpendicular chord at the reached
// point using the local segment bearing.
func markerAfter(track []models.Coordinate, ref models.Coordinate, distance, width float64) (Marker, bool) {
	start := nearestVertex(track, ref)
	point, bearing, ok := pointAlongTrack(track, start, distance)
	if !ok {
		return Marker{}, false
	}

	return Marker{
		Chord: [2]models.Coordinate{
			geo.Offset(point, math.Mod(bearing+270, 360), width),
			geo.Offset(point, math.Mod(bearing+90, 360), width),
		},
	}, true
}

// nearestVertex returns the index of the track vertex closest to target by
// great-circle distance.
func nearestVertex(track []models.Coordinate, target models.Coordinate) int {
	closest := 0
	minDist := math.Inf(1)
	for i, pt := range track {
		if d := geo.Haversine(pt, target); d < minDist {
			closest, minDist = i, d
		}
	}

	return closest
}

// pointAlongTrack returns the exact coordinate and local bearing at distance
// meters along the track from the start vertex, projecting into the segment
// the distance falls within. When the track runs out it returns the final
// point with the last segment's bearing.
func pointAlongTrack(track []models.Coordinate, start int, distance float64) (models.Coordinate, float64, bool) {
	if start >= len(track)-1 {
		return models.Coordinate{}, 0, false
	}

	remaining := distance
	for i := start; i+1 < len(track); i++ {
		segLen := geo.Haversine(track[i], track[i+1])
		if remaining <= segLen {
			bearing := geo.InitialBearing(track[i], track[i+1])
			return geo.Offset(track[i], bearing, remaining), bearing, true
		}
		remaining -= segLen
	}

	last := len(track) - 1
	return track[last], geo.InitialBearing(track[last-1], track[last]), true
}
