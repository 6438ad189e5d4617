package query

import "github.com/Zandri2k/Travel-Planner/pkg/ctdf"

type DepartureBoard struct {
	Stop *ctdf.Stop
}

type ArrivalBoard struct {
	Stop *ctdf.Stop
}
