package resrobotapi

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/query"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/source"
	"github.com/Zandri2k/Travel-Planner/pkg/itinerary"
	"github.com/Zandri2k/Travel-Planner/pkg/resrobot"
	"github.com/Zandri2k/Travel-Planner/pkg/stopdirectory"
	"github.com/Zandri2k/Travel-Planner/pkg/util"
)

type Source struct {
	Client *resrobot.Client
}

func (s Source) GetName() string {
	return "ResRobot API"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Stop{}),
		reflect.TypeOf([]*ctdf.Stop{}),
		reflect.TypeOf([]ctdf.Itinerary{}),
		reflect.TypeOf([]*ctdf.DepartureBoard{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Stop:
		return s.stopQuery(ctx, q)
	case query.NearbyStops:
		return s.nearbyStopsQuery(ctx, q)
	case query.TripSearch:
		return s.tripSearchQuery(ctx, q)
	case query.DepartureBoard:
		return s.departureBoardQuery(ctx, q)
	case query.ArrivalBoard:
		return s.arrivalBoardQuery(ctx, q)
	}

	return nil, source.UnsupportedSourceError
}

func (s Source) stopQuery(ctx context.Context, q query.Stop) (*ctdf.Stop, error) {
	if q.PrimaryIdentifier != "" {
		name := s.Client.NameFromID(ctx, q.PrimaryIdentifier)
		if name == "" {
			return nil, fmt.Errorf("%w: id %s", stopdirectory.ErrStopNotFound, q.PrimaryIdentifier)
		}

		return &ctdf.Stop{
			PrimaryIdentifier: q.PrimaryIdentifier,
			PrimaryName:       name,
		}, nil
	}

	location := s.Client.ResolveStopID(ctx, q.PrimaryName)
	if location == nil {
		return nil, fmt.Errorf("%w: %s", stopdirectory.ErrStopNotFound, q.PrimaryName)
	}

	return stopFromLocation(*location), nil
}

// An upstream failure falls through to the local directory
func (s Source) nearbyStopsQuery(ctx context.Context, q query.NearbyStops) ([]*ctdf.Stop, error) {
	if q.Offline {
		return nil, source.UnsupportedSourceError
	}

	locations := s.Client.NearbyStops(ctx, q.Location.Lat(), q.Location.Lon(), q.Count)
	if locations == nil {
		return nil, source.UnsupportedSourceError
	}

	stops := make([]*ctdf.Stop, 0, len(locations))
	for _, location := range locations {
		stops = append(stops, stopFromLocation(location))
	}

	return stops, nil
}

func (s Source) tripSearchQuery(ctx context.Context, q query.TripSearch) ([]ctdf.Itinerary, error) {
	tripList := s.Client.Trips(ctx, resrobot.TripQuery{
		OriginID:         q.OriginStop.PrimaryIdentifier,
		DestinationID:    q.DestinationStop.PrimaryIdentifier,
		Date:             q.Date,
		Time:             q.Time,
		SearchForArrival: q.SearchForArrival,
	})

	itineraries := itinerary.All(tripList)
	if itineraries == nil {
		itineraries = []ctdf.Itinerary{}
	}

	return itineraries, nil
}

func (s Source) departureBoardQuery(ctx context.Context, q query.DepartureBoard) ([]*ctdf.DepartureBoard, error) {
	departureBoard := []*ctdf.DepartureBoard{}

	board := s.Client.DepartureBoard(ctx, q.Stop.PrimaryIdentifier)
	if board == nil {
		return departureBoard, nil
	}

	for _, departure := range board.Departure {
		product := boardProduct(departure.ProductAtStop, departure.Product)

		departureBoard = append(departureBoard, &ctdf.DepartureBoard{
			Type:               ctdf.DepartureBoardRecordTypeDeparture,
			Mode:               modeForProduct(product),
			Product:            product,
			DestinationDisplay: util.CleanLocationName(departure.Direction),
			StopRef:            departure.StopExtID,
			StopName:           departure.Stop,
			Time:               parseBoardTime(departure.Date, departure.Time),
		})
	}

	return departureBoard, nil
}

func (s Source) arrivalBoardQuery(ctx context.Context, q query.ArrivalBoard) ([]*ctdf.DepartureBoard, error) {
	arrivalBoard := []*ctdf.DepartureBoard{}

	board := s.Client.ArrivalBoard(ctx, q.Stop.PrimaryIdentifier)
	if board == nil {
		return arrivalBoard, nil
	}

	for _, arrival := range board.Arrival {
		product := boardProduct(arrival.ProductAtStop, arrival.Product)

		arrivalBoard = append(arrivalBoard, &ctdf.DepartureBoard{
			Type:               ctdf.DepartureBoardRecordTypeArrival,
			Mode:               modeForProduct(product),
			Product:            product,
			DestinationDisplay: util.CleanLocationName(arrival.Origin),
			StopRef:            arrival.StopExtID,
			StopName:           arrival.Stop,
			Time:               parseBoardTime(arrival.Date, arrival.Time),
		})
	}

	return arrivalBoard, nil
}

func stopFromLocation(location resrobot.StopLocation) *ctdf.Stop {
	return &ctdf.Stop{
		PrimaryIdentifier: location.ExtID,
		PrimaryName:       location.Name,
		Location:          ctdf.NewLocation(location.Lat, location.Lon),
		DistanceMetres:    location.Distance,
		ProductClasses:    location.ProductClasses(),
	}
}

func boardProduct(atStop *resrobot.Product, products resrobot.OneOrMany[resrobot.Product]) *ctdf.Product {
	product := atStop
	if product == nil {
		if first, ok := products.First(); ok {
			product = &first
		}
	}
	if product == nil {
		return nil
	}

	return &ctdf.Product{
		Name:         product.Name,
		Number:       product.Number,
		CategoryCode: product.CategoryCode,
		Line:         product.Line,
		Operator:     product.Operator,
	}
}

func modeForProduct(product *ctdf.Product) ctdf.TransportMode {
	if product == nil {
		return ctdf.TransportModeUnknown
	}
	return ctdf.TransportModeFromCategoryCode(product.CategoryCode)
}

func parseBoardTime(date string, clock string) time.Time {
	if len(clock) == 5 {
		clock += ":00"
	}

	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
