package models

// Coordinate represents a geographical point from a course file.
// Longitude and latitude are in degrees, altitude in meters.
type Coordinate struct {
	Longitude float64 // Longitude of the geographical point.
	Latitude  float64 // Latitude of the geographical point.
	Altitude  float64 // Altitude above sea level; zero when the source omits it.
}
