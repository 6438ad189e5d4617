package ctdf

import "time"

type Itinerary struct {
	Legs []Leg `groups:"basic"`

	StartTime   time.Time     `groups:"basic"`
	ArrivalTime time.Time     `groups:"basic"`
	Duration    time.Duration `groups:"basic"`
}

func (i *Itinerary) Waypoints() []Waypoint {
	var waypoints []Waypoint
	for _, leg := range i.Legs {
		waypoints = append(waypoints, leg.Waypoints...)
	}
	return waypoints
}

// FirstProduct is the first leg that is an actual vehicle rather than a walk
func (i *Itinerary) FirstProduct() *Product {
	for _, leg := range i.Legs {
		if leg.Product != nil {
			return leg.Product
		}
	}
	return nil
}

func (i *Itinerary) FirstMode() TransportMode {
	for _, leg := range i.Legs {
		if leg.Product != nil {
			return leg.Mode
		}
	}
	if len(i.Legs) > 0 {
		return i.Legs[0].Mode
	}
	return TransportModeUnknown
}

type Leg struct {
	Mode      TransportMode `groups:"basic"`
	Product   *Product      `groups:"basic"`
	Direction string        `groups:"detailed"`

	Waypoints []Waypoint `groups:"detailed"`

	DepartureTime time.Time `groups:"basic"`
	ArrivalTime   time.Time `groups:"basic"`
}

func (l *Leg) Origin() Waypoint {
	return l.Waypoints[0]
}

func (l *Leg) Destination() Waypoint {
	return l.Waypoints[len(l.Waypoints)-1]
}

type Product struct {
	Name         string `groups:"basic"`
	Number       string `groups:"basic"`
	CategoryCode string `groups:"detailed"`
	Line         string `groups:"detailed"`
	Operator     string `groups:"detailed"`
}

// DisplayNumber is what the sidebar prints next to the icon
func (p *Product) DisplayNumber() string {
	if p == nil {
		return "N/A"
	}
	if p.Number != "" {
		return p.Number
	}
	if p.Name != "" {
		return p.Name
	}
	return "N/A"
}

type Waypoint struct {
	StopRef  string    `groups:"basic"`
	Name     string    `groups:"basic"`
	Location *Location `groups:"basic"`

	// Either may be empty, ResRobot only sends depTime/arrTime where relevant
	ArrivalTime   string `json:",omitempty" groups:"detailed"`
	DepartureTime string `json:",omitempty" groups:"detailed"`
}
