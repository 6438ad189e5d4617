package query

import "github.com/Zandri2k/Travel-Planner/pkg/ctdf"

// Stop finds a single stop either by its id or its exact name
type Stop struct {
	PrimaryIdentifier string
	PrimaryName       string
}

type StopSearch struct {
	Term  string
	Limit int
}

type StopsWithinRadius struct {
	Center   *ctdf.Location
	RadiusKm float64
}

// NearbyStops asks ResRobot unless Offline is set, then the local directory answers
type NearbyStops struct {
	Location *ctdf.Location
	Count    int
	Offline  bool
}
