package maprender

import (
	"fmt"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/geometry"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

const skippedColour = "grey"

type Map struct {
	Center orb.Point
	Zoom   int

	Features *geojson.FeatureCollection
}

func ModeColour(mode ctdf.TransportMode) string {
	switch mode {
	case ctdf.TransportModeRail:
		return "blue"
	case ctdf.TransportModeLongDistanceRail:
		return "navy"
	case ctdf.TransportModeRoad:
		return "red"
	case ctdf.TransportModeTram:
		return "purple"
	case ctdf.TransportModeSubway:
		return "darkblue"
	case ctdf.TransportModeWalking, ctdf.TransportModeUnknown:
		return "green"
	default:
		panic(fmt.Sprintf("no colour for transport mode %d", int(mode)))
	}
}

// ZoomLevel maps the diagonal of the itinerary extent in kilometres to a tile zoom
func ZoomLevel(distanceKm float64) int {
	switch {
	case distanceKm < 10:
		return 12
	case distanceKm < 50:
		return 10
	case distanceKm < 100:
		return 8
	default:
		return 6
	}
}

// Render draws every resolved path segment, a dashed straight line for every
// skipped hop and one marker per distinct stop of the itinerary
func Render(itinerary ctdf.Itinerary, geometries []geometry.LegGeometry) *Map {
	rendered := &Map{
		Zoom:     ZoomLevel(extentKm(itinerary)),
		Features: geojson.NewFeatureCollection(),
	}

	if len(itinerary.Legs) > 0 && len(itinerary.Legs[0].Waypoints) > 0 {
		rendered.Center = itinerary.Legs[0].Waypoints[0].Location.Point()
	}

	for _, legGeometry := range geometries {
		for _, segment := range legGeometry.Segments {
			if len(segment.Points) < 2 {
				continue
			}

			feature := geojson.NewFeature(segment.Points)
			feature.Properties["stroke"] = ModeColour(segment.Mode)
			feature.Properties["mode"] = segment.Mode.String()
			feature.Properties["source"] = string(segment.Source)
			feature.Properties["tooltip"] = fmt.Sprintf("%s: %s → %s", segment.Mode.String(), segment.From.Name, segment.To.Name)

			rendered.Features.Append(feature)
		}

		for _, hop := range legGeometry.Skipped {
			if !hop.From.Location.Valid() || !hop.To.Location.Valid() || hop.From.Location.Equal(hop.To.Location) {
				continue
			}

			feature := geojson.NewFeature(orb.LineString{hop.From.Location.Point(), hop.To.Location.Point()})
			feature.Properties["stroke"] = skippedColour
			feature.Properties["dashed"] = true
			feature.Properties["mode"] = legGeometry.Mode.String()
			feature.Properties["tooltip"] = fmt.Sprintf("%s: %s → %s (approximate)", legGeometry.Mode.String(), hop.From.Name, hop.To.Name)

			rendered.Features.Append(feature)
		}
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	for _, waypoint := range itinerary.Waypoints() {
		if !waypoint.Location.Valid() {
			continue
		}

		key := waypoint.StopRef
		if key == "" {
			key = waypoint.Name
		}
		if !seen.Add(key) {
			continue
		}

		feature := geojson.NewFeature(waypoint.Location.Point())
		feature.Properties["name"] = waypoint.Name
		feature.Properties["stopRef"] = waypoint.StopRef
		feature.Properties["popup"] = waypoint.Name

		rendered.Features.Append(feature)
	}

	return rendered
}

func extentKm(itinerary ctdf.Itinerary) float64 {
	var points orb.MultiPoint
	for _, waypoint := range itinerary.Waypoints() {
		if waypoint.Location.Valid() {
			points = append(points, waypoint.Location.Point())
		}
	}
	if len(points) == 0 {
		return 0
	}

	bound := points.Bound()
	return geo.DistanceHaversine(bound.Min, bound.Max) / 1000
}
