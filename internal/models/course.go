package models

// Course represents an uploaded course file awaiting turning-point extraction.
type Course struct {
	ID       int    // ID is the unique identifier for the course.
	Name     string // Name is the competition/course label given on upload.
	Document string // Document is the raw KML markup of the course.
}
