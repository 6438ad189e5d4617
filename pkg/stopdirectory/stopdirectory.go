package stopdirectory

import (
	"bufio"
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/util"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrStopNotFound = errors.New("stop not found in directory")

type stopRecord struct {
	ID           string  `csv:"stop_id"`
	Name         string  `csv:"stop_name"`
	Latitude     float64 `csv:"stop_lat"`
	Longitude    float64 `csv:"stop_lon"`
	LocationType string  `csv:"location_type"`
}

// Directory is the static table of stops. It is built once and never mutated,
// so it is safe to share between requests.
type Directory struct {
	stops  []*ctdf.Stop
	byID   map[string]*ctdf.Stop
	byName map[string]*ctdf.Stop
}

func Load(path string) (*Directory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stop directory: %w", err)
	}
	defer file.Close()

	directory, err := Parse(file)
	if err != nil {
		return nil, err
	}

	log.Info().Str("file", path).Int("stops", directory.Len()).Msg("Loaded stop directory")

	return directory, nil
}

func Parse(in io.Reader) (*Directory, error) {
	reader := bufio.NewReader(in)

	// Trafiklab exports sometimes start with a UTF-8 BOM which would break the first header
	if bom, err := reader.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		reader.Discard(3)
	}

	// Allow us to ignore those naughty records that have missing columns
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var records []stopRecord
	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return nil, fmt.Errorf("parse stop directory: %w", err)
	}

	directory := &Directory{
		byID:   map[string]*ctdf.Stop{},
		byName: map[string]*ctdf.Stop{},
	}

	for _, record := range records {
		if record.ID == "" || record.Name == "" {
			continue
		}

		stop := &ctdf.Stop{
			PrimaryIdentifier: record.ID,
			PrimaryName:       record.Name,
			LocationType:      record.LocationType,
			Location:          ctdf.NewLocation(record.Latitude, record.Longitude),
		}

		directory.stops = append(directory.stops, stop)
		directory.byID[stop.PrimaryIdentifier] = stop

		// Several rows can share a name (station + platforms), the station wins, otherwise the first row
		if existing, exists := directory.byName[stop.PrimaryName]; !exists || (!existing.IsStation() && stop.IsStation()) {
			directory.byName[stop.PrimaryName] = stop
		}
	}

	slices.SortStableFunc(directory.stops, func(a, b *ctdf.Stop) int {
		return strings.Compare(a.PrimaryName, b.PrimaryName)
	})

	return directory, nil
}

func (d *Directory) Len() int {
	return len(d.stops)
}

func (d *Directory) ByID(identifier string) (*ctdf.Stop, error) {
	if stop, exists := d.byID[identifier]; exists {
		return stop, nil
	}
	return nil, fmt.Errorf("%w: id %s", ErrStopNotFound, identifier)
}

func (d *Directory) ByName(name string) (*ctdf.Stop, error) {
	if stop, exists := d.byName[name]; exists {
		return stop, nil
	}
	return nil, fmt.Errorf("%w: name %q", ErrStopNotFound, name)
}

// WithinRadius returns one stop per distinct name within radiusKm of center, ordered by name.
// The station row of a name is preferred when it is inside the radius too.
func (d *Directory) WithinRadius(center *ctdf.Location, radiusKm float64) []*ctdf.Stop {
	positions := map[string]int{}

	stops := make([]*ctdf.Stop, 0, len(d.stops))
	for _, stop := range d.stops {
		if center.DistanceKm(stop.Location) > radiusKm {
			continue
		}

		position, seen := positions[stop.PrimaryName]
		if !seen {
			positions[stop.PrimaryName] = len(stops)
			stops = append(stops, stop)
		} else if !stops[position].IsStation() && stop.IsStation() {
			stops[position] = stop
		}
	}

	return stops
}

// Search does a case insensitive substring match on the stop names
func (d *Directory) Search(term string, limit int) []*ctdf.Stop {
	term = strings.ToLower(strings.TrimSpace(term))

	stops := slices.Clone(d.stops)
	util.InPlaceFilter(&stops, func(stop *ctdf.Stop) bool {
		return d.byName[stop.PrimaryName] == stop && strings.Contains(strings.ToLower(stop.PrimaryName), term)
	})

	if limit > 0 && len(stops) > limit {
		stops = stops[:limit]
	}

	return stops
}

// Nearest returns the count closest stops to location, closest first
func (d *Directory) Nearest(location *ctdf.Location, count int) []*ctdf.Stop {
	stops := slices.Clone(d.stops)
	distances := make(map[*ctdf.Stop]float64, len(stops))
	for _, stop := range stops {
		distances[stop] = location.DistanceKm(stop.Location)
	}

	slices.SortStableFunc(stops, func(a, b *ctdf.Stop) int {
		return cmp.Compare(distances[a], distances[b])
	})

	if count > 0 && len(stops) > count {
		stops = stops[:count]
	}

	nearest := make([]*ctdf.Stop, 0, len(stops))
	for _, stop := range stops {
		withDistance := *stop
		withDistance.DistanceMetres = int(distances[stop] * 1000)
		nearest = append(nearest, &withDistance)
	}

	return nearest
}
