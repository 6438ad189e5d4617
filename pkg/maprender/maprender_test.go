package maprender

import (
	"bytes"
	"testing"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waypoint(ref string, lat float64, lon float64) ctdf.Waypoint {
	return ctdf.Waypoint{StopRef: ref, Name: ref, Location: ctdf.NewLocation(lat, lon)}
}

func testItinerary() (ctdf.Itinerary, []geometry.LegGeometry) {
	a := waypoint("A", 59.33, 18.06)
	b := waypoint("B", 59.35, 18.00)
	c := waypoint("C", 59.36, 17.98)

	itinerary := ctdf.Itinerary{Legs: []ctdf.Leg{
		{Mode: ctdf.TransportModeRail, Waypoints: []ctdf.Waypoint{a, b}},
		{Mode: ctdf.TransportModeTram, Waypoints: []ctdf.Waypoint{b, c}},
	}}

	geometries := []geometry.LegGeometry{
		{
			Mode: ctdf.TransportModeRail,
			Segments: []ctdf.PathSegment{{
				Mode:   ctdf.TransportModeRail,
				Source: ctdf.PathSegmentSourceGraph,
				From:   a,
				To:     b,
				Points: orb.LineString{a.Location.Point(), b.Location.Point()},
			}},
		},
		{
			Mode:    ctdf.TransportModeTram,
			Skipped: []geometry.Hop{{From: b, To: c, Reason: geometry.ErrNoInfrastructure}},
		},
	}

	return itinerary, geometries
}

func TestZoomLevel(t *testing.T) {
	tests := []struct {
		distance float64
		expected int
	}{
		{0, 12},
		{9.9, 12},
		{10, 10},
		{49, 10},
		{50, 8},
		{99, 8},
		{100, 6},
		{600, 6},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ZoomLevel(test.distance), "distance %v", test.distance)
	}
}

func TestModeColour(t *testing.T) {
	assert.Equal(t, "blue", ModeColour(ctdf.TransportModeRail))
	assert.Equal(t, "red", ModeColour(ctdf.TransportModeRoad))
	assert.Equal(t, "purple", ModeColour(ctdf.TransportModeTram))
	assert.Equal(t, "darkblue", ModeColour(ctdf.TransportModeSubway))
	assert.Equal(t, "green", ModeColour(ctdf.TransportModeWalking))
}

func TestRender(t *testing.T) {
	itinerary, geometries := testItinerary()

	rendered := Render(itinerary, geometries)

	assert.Equal(t, orb.Point{18.06, 59.33}, rendered.Center)
	assert.Equal(t, 12, rendered.Zoom)

	var lines, dashed, markers int
	for _, feature := range rendered.Features.Features {
		switch feature.Geometry.(type) {
		case orb.LineString:
			lines++
			if feature.Properties["dashed"] == true {
				dashed++
				assert.Equal(t, "grey", feature.Properties["stroke"])
			} else {
				assert.Equal(t, "blue", feature.Properties["stroke"])
			}
		case orb.Point:
			markers++
		}
	}

	assert.Equal(t, 2, lines)
	assert.Equal(t, 1, dashed)
	// B is shared between both legs
	assert.Equal(t, 3, markers)
}

func TestRenderLongItineraryZoom(t *testing.T) {
	itinerary := ctdf.Itinerary{Legs: []ctdf.Leg{
		{Mode: ctdf.TransportModeLongDistanceRail, Waypoints: []ctdf.Waypoint{
			waypoint("Stockholm", 59.330136, 18.058151),
			waypoint("Göteborg", 57.708870, 11.973490),
		}},
	}}

	assert.Equal(t, 6, Render(itinerary, nil).Zoom)
}

func TestHTML(t *testing.T) {
	itinerary, geometries := testItinerary()

	var buffer bytes.Buffer
	require.NoError(t, Render(itinerary, geometries).HTML(&buffer))

	page := buffer.String()
	assert.Contains(t, page, "L.map('map').setView(")
	assert.Contains(t, page, "59.33")
	assert.Contains(t, page, `"FeatureCollection"`)
}
