package corridor

import (
	"fmt"
	"io"

	"github.com/flightlinehq/courser/internal/kml"
	"github.com/flightlinehq/courser/internal/models"
)

// KML style identifiers and colors (aabbggrr) for the generated document.
const (
	styleCorridor = "corridorStyle"
	styleMarker   = "distanceMarkerStyle"
	styleTrack    = "trackStyle"

	colorGreen  = "ff00ff00"
	colorRed    = "ff0000ff"
	colorYellow = "ff00ffff"
)

// WriteDocument renders the track, both corridor lines, the distance markers,
// and the resolved turning points as a KML document.
func WriteDocument(
	w io.Writer,
	placemarks []models.Placemark,
	track []models.Coordinate,
	turningPoints []models.TurningPoint,
	width float64,
) error {
	styles := []kml.Style{
		{ID: styleCorridor, Color: colorGreen, Width: 2},
		{ID: styleMarker, Color: colorRed, Width: 4},
		{ID: styleTrack, Color: colorYellow, Width: 2},
	}

	features := []kml.Feature{
		{Name: "Track", Style: styleTrack, Line: track},
	}

	left, right := Lines(track, width)
	if left != nil {
		features = append(features,
			kml.Feature{Name: fmt.Sprintf("Left Corridor (%gm)", width), Style: styleCorridor, Line: left},
			kml.Feature{Name: fmt.Sprintf("Right Corridor (%gm)", width), Style: styleCorridor, Line: right},
		)
	}

	for _, marker := range DistanceMarkers(placemarks, track, width) {
		features = append(features, kml.Feature{
			Name:  marker.Name,
			Style: styleMarker,
			Line:  marker.Chord[:],
		})
	}

	for _, tp := range turningPoints {
		pt := models.Coordinate{Longitude: tp.Longitude, Latitude: tp.Latitude}
		features = append(features, kml.Feature{Name: tp.Name, Point: &pt})
	}

	return kml.Write(w, styles, features)
}
