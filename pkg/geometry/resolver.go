package geometry

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"
)

var (
	ErrNoInfrastructure   = errors.New("no matching infrastructure found")
	ErrNoPath             = errors.New("no path between waypoints")
	ErrIdenticalWaypoints = errors.New("waypoints are identical")
	ErrMissingLocation    = errors.New("waypoint has no location")
)

// FeatureQuerier returns the line geometries of all ways matching any of the
// filters inside the area
type FeatureQuerier interface {
	Features(ctx context.Context, filters []TagFilter, area orb.Polygon) ([]orb.LineString, error)
}

type RoadRouter interface {
	Route(ctx context.Context, from orb.Point, to orb.Point) (orb.LineString, error)
}

// Hop is a waypoint pair that could not be resolved
type Hop struct {
	From   ctdf.Waypoint
	To     ctdf.Waypoint
	Reason error
}

type LegGeometry struct {
	Mode     ctdf.TransportMode
	Segments []ctdf.PathSegment
	Skipped  []Hop
}

type Resolver struct {
	Features FeatureQuerier
	Roads    RoadRouter
}

// ResolveItinerary resolves every leg in order, one hop at a time
func (r *Resolver) ResolveItinerary(ctx context.Context, itinerary ctdf.Itinerary) []LegGeometry {
	geometries := make([]LegGeometry, 0, len(itinerary.Legs))
	for _, leg := range itinerary.Legs {
		geometries = append(geometries, r.ResolveLeg(ctx, leg))
	}
	return geometries
}

func (r *Resolver) ResolveLeg(ctx context.Context, leg ctdf.Leg) LegGeometry {
	profile := ProfileFor(leg.Mode)
	geometry := LegGeometry{Mode: leg.Mode}

	for i := 0; i+1 < len(leg.Waypoints); i++ {
		from := leg.Waypoints[i]
		to := leg.Waypoints[i+1]

		var segment ctdf.PathSegment
		var err error

		var catcher panics.Catcher
		catcher.Try(func() {
			segment, err = r.resolveHop(ctx, profile, from, to)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			err = recovered.AsError()
		}

		if err != nil {
			event := log.Debug()
			if !errors.Is(err, ErrIdenticalWaypoints) {
				event = log.Warn()
			}
			event.Err(err).Str("mode", leg.Mode.String()).Str("from", from.Name).Str("to", to.Name).Msg("Skipping hop")

			geometry.Skipped = append(geometry.Skipped, Hop{From: from, To: to, Reason: err})
			continue
		}

		geometry.Segments = append(geometry.Segments, segment)
	}

	return geometry
}

func (r *Resolver) resolveHop(ctx context.Context, profile Profile, from ctdf.Waypoint, to ctdf.Waypoint) (ctdf.PathSegment, error) {
	if !from.Location.Valid() || !to.Location.Valid() {
		return ctdf.PathSegment{}, ErrMissingLocation
	}
	if from.Location.Equal(to.Location) {
		return ctdf.PathSegment{}, ErrIdenticalWaypoints
	}

	a := from.Location.Point()
	b := to.Location.Point()

	if profile.Road {
		return r.resolveRoadHop(ctx, profile, from, to, a, b)
	}

	size := profile.Buffer.Size(a, b)
	lines := r.queryFeatures(ctx, profile, a, b, size)
	if len(lines) == 0 {
		log.Debug().Str("mode", profile.Mode.String()).Float64("buffer", size*2).Msg("No infrastructure found, retrying with a doubled buffer")
		lines = r.queryFeatures(ctx, profile, a, b, size*2)
	}
	if len(lines) == 0 {
		return ctdf.PathSegment{}, ErrNoInfrastructure
	}

	graph := BuildGraph(lines).LargestComponent()

	start, ok := graph.Nearest(a)
	if !ok {
		return ctdf.PathSegment{}, ErrNoInfrastructure
	}
	end, _ := graph.Nearest(b)

	if start == end {
		return ctdf.PathSegment{}, fmt.Errorf("%w: both waypoints snap to the same node", ErrNoPath)
	}

	points, weight, err := graph.ShortestPath(start, end)
	if err != nil {
		return ctdf.PathSegment{}, err
	}

	return ctdf.PathSegment{
		Mode:   profile.Mode,
		Source: ctdf.PathSegmentSourceGraph,
		From:   from,
		To:     to,
		Points: points,
		Weight: weight,
	}, nil
}

func (r *Resolver) resolveRoadHop(ctx context.Context, profile Profile, from ctdf.Waypoint, to ctdf.Waypoint, a orb.Point, b orb.Point) (ctdf.PathSegment, error) {
	if r.Roads == nil {
		return ctdf.PathSegment{}, fmt.Errorf("%w: no road router configured", ErrNoPath)
	}

	points, err := r.Roads.Route(ctx, a, b)
	if err != nil {
		return ctdf.PathSegment{}, fmt.Errorf("%w: %w", ErrNoPath, err)
	}
	if len(points) == 0 {
		return ctdf.PathSegment{}, ErrNoPath
	}

	return ctdf.PathSegment{
		Mode:   profile.Mode,
		Source: ctdf.PathSegmentSourceRoadRouter,
		From:   from,
		To:     to,
		Points: points,
		Weight: planar.Length(points),
	}, nil
}

// queryFeatures treats a failing feature service the same as an empty result
func (r *Resolver) queryFeatures(ctx context.Context, profile Profile, a orb.Point, b orb.Point, size float64) []orb.LineString {
	if r.Features == nil {
		return nil
	}

	lines, err := r.Features.Features(ctx, profile.Filters, BufferLine(a, b, size))
	if err != nil {
		log.Warn().Err(err).Str("mode", profile.Mode.String()).Msg("Feature query failed")
		return nil
	}

	return lines
}
