package course

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/flightlinehq/courser/internal/geo"
	"github.com/flightlinehq/courser/internal/models"
)

// gatePointCount is the fixed shape of a gate line: entry, center, exit.
const gatePointCount = 3

// turningPointName matches marker names like "TP 4" or "tp  12".
var turningPointName = regexp.MustCompile(`(?i)^TP\s+\d+$`)

// Marker is a turning-point marker: the hand-placed approximate position of a
// named turning point, before gate resolution.
type Marker struct {
	Name    string             // Trimmed marker name, e.g. "TP 4".
	Nominal models.Coordinate  // Approximate position; altitude is dropped.
	Seq     int                // Integer suffix of the name, 0 when unparsable.
}

// Markers returns all turning-point markers among the placemarks, in file
// order.
func Markers(placemarks []models.Placemark) []Marker {
	var markers []Marker
	for _, pm := range placemarks {
		if pm.Point == nil || !turningPointName.MatchString(pm.Name) {
			continue
		}

		markers = append(markers, Marker{
			Name:    pm.Name,
			Nominal: models.Coordinate{Longitude: pm.Point.Longitude, Latitude: pm.Point.Latitude},
			Seq:     markerSeq(pm.Name),
		})
	}

	return markers
}

// markerSeq extracts the numeric suffix of a marker name, falling back to 0
// when it cannot be parsed. The fallback is load-bearing: it determines where
// malformed names sort in the final output.
func markerSeq(name string) int {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return 0
	}

	seq, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0
	}

	return seq
}

// Gates returns every three-point line placemark as a gate candidate, in file
// order.
func Gates(placemarks []models.Placemark) []models.Gate {
	var gates []models.Gate
	for _, pm := range placemarks {
		if len(pm.Line) != gatePointCount {
			continue
		}

		gates = append(gates, models.Gate{
			Entry:  pm.Line[0],
			Center: pm.Line[1],
			Exit:   pm.Line[2],
		})
	}

	return gates
}

// matchGate selects the gate whose center is nearest the marker's nominal
// position by squared planar distance. Ties keep the earliest candidate.
func matchGate(marker Marker, gates []models.Gate) (models.Gate, bool) {
	if len(gates) == 0 {
		return models.Gate{}, false
	}

	best := gates[0]
	bestDist := geo.PlanarDistanceSq(best.Center, marker.Nominal)
	for _, gate := range gates[1:] {
		if d := geo.PlanarDistanceSq(gate.Center, marker.Nominal); d < bestDist {
			best, bestDist = gate, d
		}
	}

	return best, true
}
