// Package kml reads course documents authored as KML and writes derived
// geometry (corridors, distance markers, resolved turning points) back out.
//
// Parsing is deliberately forgiving: a placemark with malformed or missing
// geometry is skipped, never surfaced as an error. Course files are authored
// by hand and routinely contain decorative or broken entries.
package kml

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/flightlinehq/courser/internal/models"
)

// Parse extracts all named placemarks with a usable LineString or Point
// geometry from raw KML markup. LineString placemarks are kept with at least
// two valid coordinates; Point placemarks with one valid lon/lat pair.
// Placemarks that fail to decode are skipped. Document order is preserved.
func Parse(doc string) []models.Placemark {
	decoder := xml.NewDecoder(strings.NewReader(doc))

	var placemarks []models.Placemark
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "Placemark" {
			continue
		}

		if pm, ok := decodePlacemark(decoder); ok {
			placemarks = append(placemarks, pm)
		}
	}

	return placemarks
}

// ParseFile reads and parses a course document from disk.
func ParseFile(path string) ([]models.Placemark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course file: %w", err)
	}

	return Parse(string(data)), nil
}

// decodePlacemark consumes tokens until the matching end of the current
// Placemark element, collecting the name and the first LineString or Point
// coordinates encountered at any depth. LineString wins over Point.
func decodePlacemark(decoder *xml.Decoder) (models.Placemark, bool) {
	var (
		name      string
		lineText  string
		pointText string
		depth     = 1
	)

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return models.Placemark{}, false
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "name":
				if depth == 1 {
					var text string
					if decoder.DecodeElement(&text, &elem) == nil {
						name = strings.TrimSpace(text)
					}
					continue
				}
				depth++
			case "LineString":
				var geometry struct {
					Coordinates string `xml:"coordinates"`
				}
				if decoder.DecodeElement(&geometry, &elem) == nil && lineText == "" {
					lineText = geometry.Coordinates
				}
			case "Point":
				var geometry struct {
					Coordinates string `xml:"coordinates"`
				}
				if decoder.DecodeElement(&geometry, &elem) == nil && pointText == "" {
					pointText = geometry.Coordinates
				}
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	if lineText != "" {
		line := parseCoordinateList(lineText)
		if len(line) >= 2 {
			return models.Placemark{Name: name, Line: line}, true
		}
		return models.Placemark{}, false
	}

	if pointText != "" {
		fields := strings.Fields(pointText)
		if len(fields) > 0 {
			if coord, ok := parseTriple(fields[0]); ok {
				return models.Placemark{Name: name, Point: &coord}, true
			}
		}
	}

	return models.Placemark{}, false
}

// parseCoordinateList tokenizes whitespace-separated "lon,lat[,alt]" triples,
// dropping any triple whose lon or lat does not parse to a finite number.
func parseCoordinateList(text string) []models.Coordinate {
	var coords []models.Coordinate
	for _, token := range strings.Fields(text) {
		if coord, ok := parseTriple(token); ok {
			coords = append(coords, coord)
		}
	}

	return coords
}

func parseTriple(token string) (models.Coordinate, bool) {
	parts := strings.Split(token, ",")
	if len(parts) < 2 {
		return models.Coordinate{}, false
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || math.IsInf(lon, 0) || math.IsNaN(lon) {
		return models.Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsInf(lat, 0) || math.IsNaN(lat) {
		return models.Coordinate{}, false
	}

	// Altitude defaults to 0 when missing or malformed.
	alt := 0.0
	if len(parts) >= 3 {
		if v, aerr := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); aerr == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
			alt = v
		}
	}

	return models.Coordinate{Longitude: lon, Latitude: lat, Altitude: alt}, true
}
