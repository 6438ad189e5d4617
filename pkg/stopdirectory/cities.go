package stopdirectory

import (
	_ "embed"
	"fmt"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"gopkg.in/yaml.v3"
)

//go:embed cities.yaml
var citiesYAML []byte

type City struct {
	Name      string  `yaml:"name" json:"name"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
	RadiusKm  float64 `yaml:"radius_km" json:"radius_km"`
}

func (c City) Center() *ctdf.Location {
	return ctdf.NewLocation(c.Latitude, c.Longitude)
}

type cityList struct {
	Cities []City `yaml:"cities"`
}

func LoadCities() ([]City, error) {
	return parseCities(citiesYAML)
}

func parseCities(data []byte) ([]City, error) {
	var list cityList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse city list: %w", err)
	}

	for i := range list.Cities {
		if list.Cities[i].RadiusKm == 0 {
			list.Cities[i].RadiusKm = 150
		}
	}

	return list.Cities, nil
}

func CityByName(cities []City, name string) (City, bool) {
	for _, city := range cities {
		if city.Name == name {
			return city, true
		}
	}
	return City{}, false
}
