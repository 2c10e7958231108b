/*
corridors resolves the turning points of a competition course file and,
optionally, renders a briefing document: the flown track, corridor boundary
lines, distance markers and the resolved turning points, written as a new KML
file.

Usage:

	corridors -i course.kml [-o corridors.kml] [-d width]
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/flightlinehq/courser/internal/corridor"
	"github.com/flightlinehq/courser/internal/course"
	"github.com/flightlinehq/courser/internal/kml"
)

func main() {
	input := flag.String("i", "", "input KML course file")
	output := flag.String("o", "", "output KML file (omit to only print turning points)")
	width := flag.Float64("d", corridor.DefaultWidthMeters, "corridor width in meters")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	doc, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", *input, err)
		os.Exit(1)
	}

	points := course.Extract(string(doc))
	for _, tp := range points {
		fmt.Printf("%s\t%.6f\t%.6f\n", tp.Name, tp.Longitude, tp.Latitude)
	}

	if *output == "" {
		return
	}

	placemarks := kml.Parse(string(doc))
	track := course.BuildTrack(placemarks)
	if len(track) < 2 {
		fmt.Fprintf(os.Stderr, "%s: no usable track\n", *input)
		os.Exit(1)
	}

	out, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", *output, err)
		os.Exit(1)
	}
	defer out.Close()

	if err := corridor.WriteDocument(out, placemarks, track, points, *width); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", *output, err)
		os.Exit(1)
	}
}
