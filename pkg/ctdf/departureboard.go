package ctdf

import "time"

type DepartureBoardRecordType string

const (
	DepartureBoardRecordTypeDeparture DepartureBoardRecordType = "Departure"
	DepartureBoardRecordTypeArrival   DepartureBoardRecordType = "Arrival"
)

type DepartureBoard struct {
	Type    DepartureBoardRecordType `groups:"basic"`
	Mode    TransportMode            `groups:"basic"`
	Product *Product                 `groups:"basic"`

	// Final destination for departures, origin of the service for arrivals
	DestinationDisplay string `groups:"basic"`

	StopRef  string `groups:"detailed"`
	StopName string `groups:"detailed"`

	Time time.Time `groups:"basic"`
}
