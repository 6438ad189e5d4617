package geometry

import (
	"fmt"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// TagFilter matches OSM ways whose Key carries one of Values.
// Several filters on one profile are combined as a union.
type TagFilter struct {
	Key    string
	Values []string
}

// BufferPolicy sizes the query corridor around a hop in planar degrees.
// A zero Factor means the Fixed margin is used as is.
type BufferPolicy struct {
	Fixed float64

	Factor float64
	Min    float64
	Max    float64
}

func (p BufferPolicy) Size(a orb.Point, b orb.Point) float64 {
	if p.Factor == 0 {
		return p.Fixed
	}

	size := p.Factor * planar.Distance(a, b)
	if size < p.Min {
		return p.Min
	}
	if size > p.Max {
		return p.Max
	}

	return size
}

type Profile struct {
	Mode ctdf.TransportMode

	// Road profiles skip the infrastructure graph and go to the road router
	Road bool

	Filters []TagFilter
	Buffer  BufferPolicy
}

var pedestrianFilters = []TagFilter{
	{Key: "highway", Values: []string{"footway", "pedestrian", "path", "track"}},
	{Key: "sidewalk", Values: []string{"yes"}},
}

func ProfileFor(mode ctdf.TransportMode) Profile {
	switch mode {
	case ctdf.TransportModeRail:
		return Profile{
			Mode:    mode,
			Filters: []TagFilter{{Key: "railway", Values: []string{"rail"}}},
			Buffer:  BufferPolicy{Factor: 0.25, Min: 0.01, Max: 0.10},
		}
	case ctdf.TransportModeLongDistanceRail:
		return Profile{
			Mode:    mode,
			Filters: []TagFilter{{Key: "railway", Values: []string{"rail"}}},
			Buffer:  BufferPolicy{Factor: 0.30, Min: 0.02, Max: 0.40},
		}
	case ctdf.TransportModeRoad:
		return Profile{
			Mode: mode,
			Road: true,
		}
	case ctdf.TransportModeTram:
		return Profile{
			Mode:    mode,
			Filters: []TagFilter{{Key: "railway", Values: []string{"tram"}}},
			Buffer:  BufferPolicy{Fixed: 0.005},
		}
	case ctdf.TransportModeSubway:
		return Profile{
			Mode:    mode,
			Filters: []TagFilter{{Key: "railway", Values: []string{"subway"}}},
			Buffer:  BufferPolicy{Fixed: 0.008},
		}
	case ctdf.TransportModeWalking, ctdf.TransportModeUnknown:
		return Profile{
			Mode:    mode,
			Filters: pedestrianFilters,
			Buffer:  BufferPolicy{Fixed: 0.005},
		}
	default:
		panic(fmt.Sprintf("no geometry profile for transport mode %d", int(mode)))
	}
}
