package itinerary

import (
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/resrobot"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// First returns the first trip candidate in upstream order
func First(tripList *resrobot.TripList) (ctdf.Itinerary, bool) {
	if tripList == nil || len(tripList.Trip) == 0 {
		return ctdf.Itinerary{}, false
	}

	return FromTrip(tripList.Trip[0]), true
}

func All(tripList *resrobot.TripList) []ctdf.Itinerary {
	if tripList == nil {
		return nil
	}

	itineraries := make([]ctdf.Itinerary, 0, len(tripList.Trip))
	for _, trip := range tripList.Trip {
		itineraries = append(itineraries, FromTrip(trip))
	}

	return itineraries
}

func FromTrip(trip resrobot.Trip) ctdf.Itinerary {
	legs := ExtractLegs(trip)

	itinerary := ctdf.Itinerary{
		Legs:        legs,
		StartTime:   parseDateTime(trip.Origin.Date, trip.Origin.Time),
		ArrivalTime: parseDateTime(trip.Destination.Date, trip.Destination.Time),
	}

	if len(legs) > 0 {
		if itinerary.StartTime.IsZero() {
			itinerary.StartTime = legs[0].DepartureTime
		}
		if itinerary.ArrivalTime.IsZero() {
			itinerary.ArrivalTime = legs[len(legs)-1].ArrivalTime
		}
	}

	if trip.Duration != "" && !itinerary.StartTime.IsZero() {
		if duration, err := iso8601.ParseISO8601(trip.Duration); err == nil {
			itinerary.Duration = duration.Shift(itinerary.StartTime).Sub(itinerary.StartTime)
		} else {
			log.Debug().Err(err).Str("duration", trip.Duration).Msg("Unparseable trip duration")
		}
	}

	if itinerary.Duration == 0 && !itinerary.StartTime.IsZero() && !itinerary.ArrivalTime.IsZero() {
		itinerary.Duration = itinerary.ArrivalTime.Sub(itinerary.StartTime)
	}

	return itinerary
}

// ExtractLegs turns every trip leg into a ctdf.Leg whose waypoints are the
// origin, the stops passed on the way and the destination, each exactly once.
func ExtractLegs(trip resrobot.Trip) []ctdf.Leg {
	legs := make([]ctdf.Leg, 0, len(trip.LegList.Leg))

	for _, resrobotLeg := range trip.LegList.Leg {
		legs = append(legs, extractLeg(resrobotLeg))
	}

	return legs
}

func extractLeg(resrobotLeg resrobot.Leg) ctdf.Leg {
	var origin, destination resrobot.Location
	if resrobotLeg.Origin != nil {
		origin = *resrobotLeg.Origin
	}
	if resrobotLeg.Destination != nil {
		destination = *resrobotLeg.Destination
	}

	leg := ctdf.Leg{
		Mode:          modeForLeg(resrobotLeg),
		Direction:     resrobotLeg.Direction,
		DepartureTime: parseDateTime(origin.Date, origin.Time),
		ArrivalTime:   parseDateTime(destination.Date, destination.Time),
	}

	if product, ok := resrobotLeg.Product.First(); ok {
		leg.Product = &ctdf.Product{
			Name:         product.Name,
			Number:       product.Number,
			CategoryCode: product.CategoryCode,
			Line:         product.Line,
			Operator:     product.Operator,
		}
	}

	originWaypoint := waypointFromLocation(origin)
	originWaypoint.DepartureTime = origin.Time
	leg.Waypoints = append(leg.Waypoints, originWaypoint)

	if resrobotLeg.Stops != nil {
		for _, stop := range resrobotLeg.Stops.Stop {
			if sameStop(stop, origin) || sameStop(stop, destination) {
				continue
			}

			leg.Waypoints = append(leg.Waypoints, ctdf.Waypoint{
				StopRef:       stop.ExtID,
				Name:          stop.Name,
				Location:      ctdf.NewLocation(stop.Lat, stop.Lon),
				ArrivalTime:   stop.ArrivalTime,
				DepartureTime: stop.DepartureTime,
			})
		}
	}

	destinationWaypoint := waypointFromLocation(destination)
	destinationWaypoint.ArrivalTime = destination.Time
	leg.Waypoints = append(leg.Waypoints, destinationWaypoint)

	return leg
}

func modeForLeg(resrobotLeg resrobot.Leg) ctdf.TransportMode {
	switch resrobotLeg.Type {
	case "WALK", "TRSF":
		return ctdf.TransportModeWalking
	}

	if product, ok := resrobotLeg.Product.First(); ok {
		return ctdf.TransportModeFromCategoryCode(product.CategoryCode)
	}

	return ctdf.TransportModeUnknown
}

func waypointFromLocation(location resrobot.Location) ctdf.Waypoint {
	stopRef := location.ExtID
	if stopRef == "" {
		stopRef = location.ID
	}

	return ctdf.Waypoint{
		StopRef:  stopRef,
		Name:     location.Name,
		Location: ctdf.NewLocation(location.Lat, location.Lon),
	}
}

// ResRobot repeats the leg endpoints at the start and end of the passlist
func sameStop(stop resrobot.Stop, location resrobot.Location) bool {
	if stop.ExtID != "" && location.ExtID != "" {
		return stop.ExtID == location.ExtID
	}

	return stop.Lat == location.Lat && stop.Lon == location.Lon && stop.Name == location.Name
}

func parseDateTime(date string, clock string) time.Time {
	if date == "" || clock == "" {
		return time.Time{}
	}

	if len(clock) == 5 {
		clock += ":00"
	}

	parsed, err := time.ParseInLocation(dateTimeLayout, date+" "+clock, time.Local)
	if err != nil {
		log.Debug().Err(err).Str("date", date).Str("time", clock).Msg("Unparseable ResRobot timestamp")
		return time.Time{}
	}

	return parsed
}
