package tripplanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/query"
	"github.com/Zandri2k/Travel-Planner/pkg/geometry"
	"github.com/Zandri2k/Travel-Planner/pkg/maprender"
	"github.com/Zandri2k/Travel-Planner/pkg/util"
	"github.com/rs/zerolog/log"
)

var ErrNoTrips = errors.New("no trips found")

type Planner struct {
	Aggregator *dataaggregator.Aggregator
	Resolver   *geometry.Resolver
}

type Request struct {
	// Stop id or stop name
	From string
	To   string

	Date string
	Time string

	SearchForArrival bool
}

type Result struct {
	Origin      *ctdf.Stop
	Destination *ctdf.Stop

	Itineraries []ctdf.Itinerary
}

// Plan resolves both stops and asks for the itineraries between them
func (p *Planner) Plan(ctx context.Context, request Request) (*Result, error) {
	origin, err := p.ResolveStop(ctx, request.From)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}

	destination, err := p.ResolveStop(ctx, request.To)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	itineraries, err := dataaggregator.Lookup[[]ctdf.Itinerary](ctx, p.Aggregator, query.TripSearch{
		OriginStop:       origin,
		DestinationStop:  destination,
		Date:             request.Date,
		Time:             request.Time,
		SearchForArrival: request.SearchForArrival,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Origin:      origin,
		Destination: destination,
		Itineraries: itineraries,
	}

	if len(itineraries) == 0 {
		return result, ErrNoTrips
	}

	log.Debug().
		Str("origin", origin.PrimaryIdentifier).
		Str("destination", destination.PrimaryIdentifier).
		Int("itineraries", len(itineraries)).
		Msg("Trip search finished")

	return result, nil
}

// ResolveStop treats all digit input as a stop id and anything else as a name
func (p *Planner) ResolveStop(ctx context.Context, input string) (*ctdf.Stop, error) {
	input = strings.TrimSpace(input)

	stopQuery := query.Stop{PrimaryName: input}
	if input != "" && strings.IndexFunc(input, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		stopQuery = query.Stop{PrimaryIdentifier: input}
	}

	return dataaggregator.Lookup[*ctdf.Stop](ctx, p.Aggregator, stopQuery)
}

// Geometry resolves the path of every leg and renders the map for one itinerary
func (p *Planner) Geometry(ctx context.Context, itinerary ctdf.Itinerary) (*maprender.Map, []geometry.LegGeometry) {
	startTime := time.Now()

	geometries := p.Resolver.ResolveItinerary(ctx, itinerary)

	skipped := 0
	for _, legGeometry := range geometries {
		skipped += len(legGeometry.Skipped)
	}

	log.Info().
		Int("legs", len(itinerary.Legs)).
		Int("skipped", skipped).
		Str("latency", time.Since(startTime).String()).
		Msg("Resolved itinerary geometry")

	return maprender.Render(itinerary, geometries), geometries
}

func (p *Planner) Departures(ctx context.Context, stop *ctdf.Stop) ([]*ctdf.DepartureBoard, error) {
	return dataaggregator.Lookup[[]*ctdf.DepartureBoard](ctx, p.Aggregator, query.DepartureBoard{Stop: stop})
}

func (p *Planner) Arrivals(ctx context.Context, stop *ctdf.Stop) ([]*ctdf.DepartureBoard, error) {
	return dataaggregator.Lookup[[]*ctdf.DepartureBoard](ctx, p.Aggregator, query.ArrivalBoard{Stop: stop})
}

// Summary is one row of the itinerary list in the sidebar
type Summary struct {
	Icon     string `groups:"basic"`
	Number   string `groups:"basic"`
	Wait     string `groups:"basic"`
	Duration string `groups:"basic"`
	Details  string `groups:"basic"`
}

func Summarise(itinerary ctdf.Itinerary, now time.Time) Summary {
	mode := itinerary.FirstMode()

	return Summary{
		Icon:     mode.Icon(),
		Number:   itinerary.FirstProduct().DisplayNumber(),
		Wait:     util.FormatWait(itinerary.StartTime, now),
		Duration: util.FormatDuration(itinerary.Duration),
		Details:  Details(itinerary),
	}
}

// Details renders "Origin: 10:00 > Change: 10:20 > Destination: 10:45"
func Details(itinerary ctdf.Itinerary) string {
	if len(itinerary.Legs) == 0 {
		return ""
	}

	first := itinerary.Legs[0]
	parts := []string{fmt.Sprintf("%s: %s", util.CleanLocationName(first.Origin().Name), clock(first.DepartureTime))}

	for _, leg := range itinerary.Legs {
		parts = append(parts, fmt.Sprintf("%s: %s", util.CleanLocationName(leg.Destination().Name), clock(leg.ArrivalTime)))
	}

	return strings.Join(parts, " > ")
}

func clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}
