package kml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flightlinehq/courser/internal/models"
)

// Style defines a named line style referenced by features, using the KML
// aabbggrr color encoding.
type Style struct {
	ID    string
	Color string
	Width float64
}

// Feature is a single output placemark: either a line or a point.
type Feature struct {
	Name  string
	Style string // Style ID referenced via styleUrl; empty for no style.
	Line  []models.Coordinate
	Point *models.Coordinate
}

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Styles     []kmlStyle     `xml:"Style"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlStyle struct {
	ID        string       `xml:"id,attr"`
	LineStyle kmlLineStyle `xml:"LineStyle"`
}

type kmlLineStyle struct {
	Color string  `xml:"color"`
	Width float64 `xml:"width"`
}

type kmlPlacemark struct {
	Name       string       `xml:"name"`
	StyleURL   string       `xml:"styleUrl,omitempty"`
	LineString *kmlGeometry `xml:"LineString,omitempty"`
	Point      *kmlGeometry `xml:"Point,omitempty"`
}

type kmlGeometry struct {
	Coordinates string `xml:"coordinates"`
}

// Write serializes styles and features as a standalone KML document.
func Write(w io.Writer, styles []Style, features []Feature) error {
	root := kmlRoot{
		Xmlns: "http://www.opengis.net/kml/2.2",
	}

	for _, s := range styles {
		root.Document.Styles = append(root.Document.Styles, kmlStyle{
			ID:        s.ID,
			LineStyle: kmlLineStyle{Color: s.Color, Width: s.Width},
		})
	}

	for _, f := range features {
		pm := kmlPlacemark{Name: f.Name}
		if f.Style != "" {
			pm.StyleURL = "#" + f.Style
		}
		switch {
		case len(f.Line) > 0:
			pm.LineString = &kmlGeometry{Coordinates: FormatCoordinates(f.Line)}
		case f.Point != nil:
			pm.Point = &kmlGeometry{Coordinates: formatTriple(*f.Point)}
		}
		root.Document.Placemarks = append(root.Document.Placemarks, pm)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write KML header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("failed to encode KML document: %w", err)
	}

	return nil
}

// FormatCoordinates renders a coordinate sequence as the whitespace-separated
// "lon,lat,alt" list KML expects.
func FormatCoordinates(coords []models.Coordinate) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, formatTriple(c))
	}

	return strings.Join(parts, " ")
}

func formatTriple(c models.Coordinate) string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Altitude, 'f', -1, 64)
}
