package ctdf

type Stop struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`

	// GTFS location_type, 1 is a station and 0 or empty a stop/platform
	LocationType string `groups:"detailed"`

	Location *Location `groups:"basic"`

	DistanceMetres int      `json:",omitempty" groups:"basic"`
	ProductClasses []string `json:",omitempty" groups:"detailed"`
}

func (s *Stop) IsStation() bool {
	return s.LocationType == "1"
}
