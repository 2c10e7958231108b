package corridor_test

import (
	"bytes"
	"testing"

	"github.com/flightlinehq/courser/internal/corridor"
	"github.com/flightlinehq/courser/internal/geo"
	"github.com/flightlinehq/courser/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coord(lon, lat float64) models.Coordinate {
	return models.Coordinate{Longitude: lon, Latitude: lat}
}

func TestLines(t *testing.T) {
	t.Parallel()

	t.Run("offsets are exactly the corridor width", func(t *testing.T) {
		t.Parallel()
		track := []models.Coordinate{coord(30, 50), coord(30.1, 50), coord(30.2, 50.05)}

		left, right := corridor.Lines(track, 300)

		require.Len(t, left, len(track))
		require.Len(t, right, len(track))
		for i := range track {
			assert.InDelta(t, 300, geo.Haversine(track[i], left[i]), 0.5)
			assert.InDelta(t, 300, geo.Haversine(track[i], right[i]), 0.5)
		}
	})

	t.Run("left and right sit on opposite sides", func(t *testing.T) {
		t.Parallel()
		// Track heading due east: left is north, right is south.
		track := []models.Coordinate{coord(0, 0), coord(0.5, 0)}

		left, right := corridor.Lines(track, 300)

		assert.Positive(t, left[0].Latitude)
		assert.Negative(t, right[0].Latitude)
	})

	t.Run("short track yields no corridor", func(t *testing.T) {
		t.Parallel()
		left, right := corridor.Lines([]models.Coordinate{coord(0, 0)}, 300)

		assert.Nil(t, left)
		assert.Nil(t, right)
	})
}

func TestDistanceMarkers(t *testing.T) {
	t.Parallel()

	// A straight eastbound track at the equator, ~44 km long. One degree of
	// longitude is ~111.2 km, so every marker fits on the track.
	track := []models.Coordinate{coord(0, 0), coord(0.2, 0), coord(0.4, 0)}
	sp := coord(0, 0)
	tp1 := coord(0.2, 0.001)

	placemarks := []models.Placemark{
		{Name: "SP", Point: &sp},
		{Name: "TP 1", Point: &tp1},
	}

	markers := corridor.DistanceMarkers(placemarks, track, 300)

	require.Len(t, markers, 2)

	t.Run("start point marker sits 5NM after SP", func(t *testing.T) {
		t.Parallel()
		m := markers[0]

		assert.Equal(t, "5NM after SP", m.Name)
		mid := coord(
			(m.Chord[0].Longitude+m.Chord[1].Longitude)/2,
			(m.Chord[0].Latitude+m.Chord[1].Latitude)/2,
		)
		assert.InDelta(t, 5*1852, geo.Haversine(track[0], mid), 5)
	})

	t.Run("turning point marker sits 1NM after its nearest vertex", func(t *testing.T) {
		t.Parallel()
		m := markers[1]

		assert.Equal(t, "1NM after TP 1", m.Name)
		mid := coord(
			(m.Chord[0].Longitude+m.Chord[1].Longitude)/2,
			(m.Chord[0].Latitude+m.Chord[1].Latitude)/2,
		)
		assert.InDelta(t, 1852, geo.Haversine(track[1], mid), 5)
	})

	t.Run("chord spans the full corridor", func(t *testing.T) {
		t.Parallel()
		chord := markers[0].Chord

		assert.InDelta(t, 600, geo.Haversine(chord[0], chord[1]), 1)
	})
}

func TestDistanceMarkers_Degenerate(t *testing.T) {
	t.Parallel()

	t.Run("empty track", func(t *testing.T) {
		t.Parallel()
		sp := coord(0, 0)

		assert.Nil(t, corridor.DistanceMarkers([]models.Placemark{{Name: "SP", Point: &sp}}, nil, 300))
	})

	t.Run("reference at the final vertex cannot be placed", func(t *testing.T) {
		t.Parallel()
		track := []models.Coordinate{coord(0, 0), coord(0.1, 0)}
		sp := coord(0.1, 0)

		markers := corridor.DistanceMarkers([]models.Placemark{{Name: "SP", Point: &sp}}, track, 300)

		assert.Empty(t, markers)
	})

	t.Run("marker clamps to track end when distance runs out", func(t *testing.T) {
		t.Parallel()
		// Only ~1.1 km of track remains after the TP's nearest vertex, so
		// the 1 NM marker clamps to the final vertex.
		track := []models.Coordinate{coord(0, 0), coord(0.05, 0), coord(0.06, 0)}
		tp := coord(0.05, 0.001)

		markers := corridor.DistanceMarkers([]models.Placemark{{Name: "TP 1", Point: &tp}}, track, 300)

		require.Len(t, markers, 1)
		mid := coord(
			(markers[0].Chord[0].Longitude+markers[0].Chord[1].Longitude)/2,
			(markers[0].Chord[0].Latitude+markers[0].Chord[1].Latitude)/2,
		)
		assert.InDelta(t, 0, geo.Haversine(track[len(track)-1], mid), 1)
	})
}

func TestWriteDocument(t *testing.T) {
	t.Parallel()

	track := []models.Coordinate{coord(0, 0), coord(0.2, 0)}
	sp := coord(0, 0)
	placemarks := []models.Placemark{{Name: "SP", Point: &sp}}
	turningPoints := []models.TurningPoint{{Name: "TP 1", Longitude: 0.1, Latitude: 0}}

	var buf bytes.Buffer
	err := corridor.WriteDocument(&buf, placemarks, track, turningPoints, 300)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Left Corridor (300m)")
	assert.Contains(t, out, "Right Corridor (300m)")
	assert.Contains(t, out, "5NM after SP")
	assert.Contains(t, out, "<name>TP 1</name>")
	assert.Contains(t, out, `<Style id="distanceMarkerStyle">`)
}
