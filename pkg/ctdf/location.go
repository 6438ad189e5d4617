package ctdf

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Location follows the GeoJSON ordering, Coordinates is [lon, lat]
type Location struct {
	Type        string    `json:"-" groups:"basic"`
	Coordinates []float64 `json:"coordinates" groups:"basic"`
}

func NewLocation(lat float64, lon float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
	}
}

func (l *Location) Lon() float64 {
	if l == nil || len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[0]
}

func (l *Location) Lat() float64 {
	if l == nil || len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[1]
}

func (l *Location) Valid() bool {
	return l != nil && len(l.Coordinates) == 2 && !(l.Coordinates[0] == 0 && l.Coordinates[1] == 0)
}

func (l *Location) Point() orb.Point {
	return orb.Point{l.Lon(), l.Lat()}
}

func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.Lon() == other.Lon() && l.Lat() == other.Lat()
}

// DistanceKm is the great circle distance between both locations
func (l *Location) DistanceKm(other *Location) float64 {
	return geo.DistanceHaversine(l.Point(), other.Point()) / 1000
}
