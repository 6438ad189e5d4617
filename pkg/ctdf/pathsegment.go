package ctdf

import "github.com/paulmach/orb"

type PathSegmentSource string

const (
	PathSegmentSourceGraph      PathSegmentSource = "graph"
	PathSegmentSourceRoadRouter PathSegmentSource = "road-router"
)

// PathSegment is the resolved real world path of one hop between two waypoints.
// Points are stored in orb ordering (lon, lat).
type PathSegment struct {
	Mode   TransportMode
	Source PathSegmentSource

	From Waypoint
	To   Waypoint

	Points orb.LineString
	Weight float64
}
