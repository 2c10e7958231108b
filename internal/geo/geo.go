// Package geo provides the planar and spherical geometry primitives used by
// the course extraction pipeline. All functions are pure and stateless.
package geo

import (
	"math"

	"github.com/flightlinehq/courser/internal/models"
)

// EarthRadius is the mean Earth radius in meters used for all spherical math.
const EarthRadius = 6371000.0

// epsilon bounds both the parallel-lines determinant test and the inclusive
// bounding-box check in SegmentIntersection.
const epsilon = 1e-12

// Haversine returns the great-circle distance between two coordinates in
// meters. Altitude is ignored.
func Haversine(a, b models.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// PlanarDistanceSq returns the squared flat (degree-space) distance between
// two coordinates. The pipeline deliberately mixes this planar metric with
// the geodesic one; see the extraction design notes.
func PlanarDistanceSq(a, b models.Coordinate) float64 {
	dx := a.Longitude - b.Longitude
	dy := a.Latitude - b.Latitude
	return dx*dx + dy*dy
}

// SegmentIntersection computes the intersection of segments a1-a2 and b1-b2
// in planar longitude/latitude space. It reports false when the segments are
// parallel (determinant magnitude <= 1e-12) or when the line intersection
// point falls outside either segment's bounding box (inclusive, 1e-12
// tolerance on each bound).
func SegmentIntersection(a1, a2, b1, b2 models.Coordinate) (models.Coordinate, bool) {
	x1, y1 := a1.Longitude, a1.Latitude
	x2, y2 := a2.Longitude, a2.Latitude
	x3, y3 := b1.Longitude, b1.Latitude
	x4, y4 := b2.Longitude, b2.Latitude

	det := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(det) <= epsilon {
		return models.Coordinate{}, false
	}

	px := ((x1*y2-y1*x2)*(x3-x4) - (x1-x2)*(x3*y4-y3*x4)) / det
	py := ((x1*y2-y1*x2)*(y3-y4) - (y1-y2)*(x3*y4-y3*x4)) / det

	if !withinSegment(px, py, x1, y1, x2, y2) || !withinSegment(px, py, x3, y3, x4, y4) {
		return models.Coordinate{}, false
	}

	return models.Coordinate{Longitude: px, Latitude: py}, true
}

func withinSegment(px, py, x1, y1, x2, y2 float64) bool {
	return px >= math.Min(x1, x2)-epsilon && px <= math.Max(x1, x2)+epsilon &&
		py >= math.Min(y1, y2)-epsilon && py <= math.Max(y1, y2)+epsilon
}

// ProjectOntoSegment returns the point on segment p1-p2 nearest to c, using
// planar coordinates. The projection parameter is clamped to the segment.
func ProjectOntoSegment(p1, p2, c models.Coordinate) models.Coordinate {
	dx := p2.Longitude - p1.Longitude
	dy := p2.Latitude - p1.Latitude

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p1
	}

	t := ((c.Longitude-p1.Longitude)*dx + (c.Latitude-p1.Latitude)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	return models.Coordinate{
		Longitude: p1.Longitude + t*dx,
		Latitude:  p1.Latitude + t*dy,
	}
}

// InitialBearing returns the initial great-circle bearing from a to b in
// degrees, normalized to [0, 360).
func InitialBearing(a, b models.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// Offset returns the coordinate reached by travelling distance meters from c
// along the given bearing (degrees). Altitude is carried through unchanged.
func Offset(c models.Coordinate, bearingDeg, distance float64) models.Coordinate {
	lat1 := c.Latitude * math.Pi / 180
	lon1 := c.Longitude * math.Pi / 180
	bearing := bearingDeg * math.Pi / 180
	ad := distance / EarthRadius

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ad) + math.Cos(lat1)*math.Sin(ad)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(ad)*math.Cos(lat1),
		math.Cos(ad)-math.Sin(lat1)*math.Sin(lat2),
	)

	return models.Coordinate{
		Longitude: lon2 * 180 / math.Pi,
		Latitude:  lat2 * 180 / math.Pi,
		Altitude:  c.Altitude,
	}
}
