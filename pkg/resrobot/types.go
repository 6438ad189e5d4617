package resrobot

type TripList struct {
	Trip OneOrMany[Trip] `json:"Trip"`
}

type Trip struct {
	Origin      Location `json:"Origin"`
	Destination Location `json:"Destination"`
	LegList     LegList  `json:"LegList"`

	TripID   string `json:"tripId"`
	Duration string `json:"duration"`
}

type LegList struct {
	Leg OneOrMany[Leg] `json:"Leg"`
}

type Leg struct {
	Origin      *Location          `json:"Origin"`
	Destination *Location          `json:"Destination"`
	Product     OneOrMany[Product] `json:"Product"`
	Stops       *StopList          `json:"Stops"`

	Type      string `json:"type"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Duration  string `json:"duration"`
	Distance  int    `json:"dist"`
}

type StopList struct {
	Stop OneOrMany[Stop] `json:"Stop"`
}

type Location struct {
	Name  string  `json:"name"`
	ID    string  `json:"id"`
	ExtID string  `json:"extId"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Time  string  `json:"time"`
	Date  string  `json:"date"`
	Type  string  `json:"type"`
}

type Stop struct {
	Name     string  `json:"name"`
	ID       string  `json:"id"`
	ExtID    string  `json:"extId"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RouteIdx int     `json:"routeIdx"`

	ArrivalTime   string `json:"arrTime"`
	ArrivalDate   string `json:"arrDate"`
	DepartureTime string `json:"depTime"`
	DepartureDate string `json:"depDate"`
}

type Product struct {
	Name         string `json:"name"`
	Number       string `json:"num"`
	CategoryCode string `json:"catCode"`
	CategoryOut  string `json:"catOut"`
	CategoryLong string `json:"catOutL"`
	Line         string `json:"line"`
	Operator     string `json:"operator"`
	Class        string `json:"cls"`
}

type DepartureBoard struct {
	Departure OneOrMany[Departure] `json:"Departure"`
}

type Departure struct {
	Name      string `json:"name"`
	Stop      string `json:"stop"`
	StopExtID string `json:"stopExtId"`
	Time      string `json:"time"`
	Date      string `json:"date"`
	Direction string `json:"direction"`

	ProductAtStop *Product           `json:"ProductAtStop"`
	Product       OneOrMany[Product] `json:"Product"`
}

type ArrivalBoard struct {
	Arrival OneOrMany[Arrival] `json:"Arrival"`
}

type Arrival struct {
	Name      string `json:"name"`
	Stop      string `json:"stop"`
	StopExtID string `json:"stopExtId"`
	Time      string `json:"time"`
	Date      string `json:"date"`
	Origin    string `json:"origin"`

	ProductAtStop *Product           `json:"ProductAtStop"`
	Product       OneOrMany[Product] `json:"Product"`
}

type LocationList struct {
	StopLocationOrCoordLocation []LocationEntry `json:"stopLocationOrCoordLocation"`
}

// LocationEntry wraps the single keyed object location.name returns per result
type LocationEntry struct {
	StopLocation  *StopLocation `json:"StopLocation"`
	CoordLocation *StopLocation `json:"CoordLocation"`
}

func (e LocationEntry) Location() *StopLocation {
	if e.StopLocation != nil {
		return e.StopLocation
	}
	return e.CoordLocation
}

type StopLocation struct {
	Name     string  `json:"name"`
	ID       string  `json:"id"`
	ExtID    string  `json:"extId"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance int     `json:"dist"`
	Weight   int     `json:"weight"`

	ProductAtStop OneOrMany[Product] `json:"productAtStop"`
}

// ProductClasses lists the transport classes served at the stop
func (s *StopLocation) ProductClasses() []string {
	var classes []string
	for _, product := range s.ProductAtStop {
		classes = append(classes, product.Class)
	}
	return classes
}

func (l LocationList) StopLocations() []StopLocation {
	var stops []StopLocation
	for _, entry := range l.StopLocationOrCoordLocation {
		if location := entry.Location(); location != nil {
			stops = append(stops, *location)
		}
	}
	return stops
}
