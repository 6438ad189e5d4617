package query

import "github.com/Zandri2k/Travel-Planner/pkg/ctdf"

type TripSearch struct {
	OriginStop      *ctdf.Stop
	DestinationStop *ctdf.Stop

	// Empty Date/Time mean now
	Date string
	Time string

	SearchForArrival bool
}
