package dataaggregator_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/query"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/source"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/source/localstops"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/source/resrobotapi"
	"github.com/Zandri2k/Travel-Planner/pkg/resrobot"
	"github.com/Zandri2k/Travel-Planner/pkg/stopdirectory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stopsCSV = `stop_id,stop_name,stop_lat,stop_lon,location_type
740000001,Stockholm Centralstation,59.330136,18.058151,1
740021670,Odenplan,59.342781,18.049052,0
`

type unsupportedSource struct {
	calls int
}

func (s *unsupportedSource) GetName() string { return "Unsupported" }

func (s *unsupportedSource) Supports() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(ctdf.Stop{})}
}

func (s *unsupportedSource) Lookup(ctx context.Context, q any) (interface{}, error) {
	s.calls++
	return nil, source.UnsupportedSourceError
}

func newAggregator(t *testing.T, handler http.HandlerFunc) *dataaggregator.Aggregator {
	directory, err := stopdirectory.Parse(strings.NewReader(stopsCSV))
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(localstops.Source{Directory: directory})
	aggregator.RegisterSource(resrobotapi.Source{Client: resrobot.NewClient(server.URL, "key", 5*time.Second)})
	aggregator.RegisterSource(localstops.Source{Directory: directory, Fallback: true})

	return aggregator
}

func TestLookupNoSource(t *testing.T) {
	aggregator := &dataaggregator.Aggregator{}

	_, err := dataaggregator.Lookup[*ctdf.Stop](context.Background(), aggregator, query.Stop{PrimaryName: "Odenplan"})
	assert.ErrorIs(t, err, dataaggregator.ErrNoSource)
}

func TestLookupFallsThroughUnsupported(t *testing.T) {
	unsupported := &unsupportedSource{}
	aggregator := newAggregator(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call to %s", r.URL.Path)
	})
	aggregator.Sources = append([]dataaggregator.DataSource{unsupported}, aggregator.Sources...)

	stop, err := dataaggregator.Lookup[*ctdf.Stop](context.Background(), aggregator, query.Stop{PrimaryName: "Odenplan"})
	require.NoError(t, err)
	assert.Equal(t, "740021670", stop.PrimaryIdentifier)
	assert.Equal(t, 1, unsupported.calls)
}

func TestLookupStopFallsBackToResRobot(t *testing.T) {
	aggregator := newAggregator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/location.name", r.URL.Path)
		w.Write([]byte(`{"stopLocationOrCoordLocation": [{"StopLocation": {"extId": "740000005", "name": "Uppsala Centralstation", "lat": 59.858565, "lon": 17.646753}}]}`))
	})

	stop, err := dataaggregator.Lookup[*ctdf.Stop](context.Background(), aggregator, query.Stop{PrimaryName: "Uppsala"})
	require.NoError(t, err)
	assert.Equal(t, "740000005", stop.PrimaryIdentifier)
}

func TestLookupStopNotFound(t *testing.T) {
	aggregator := newAggregator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stopLocationOrCoordLocation": []}`))
	})

	_, err := dataaggregator.Lookup[*ctdf.Stop](context.Background(), aggregator, query.Stop{PrimaryName: "Atlantis"})
	assert.ErrorIs(t, err, stopdirectory.ErrStopNotFound)
}

func TestLookupNearbyStops(t *testing.T) {
	aggregator := newAggregator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	location := ctdf.NewLocation(59.3428, 18.0490)

	// ResRobot fails so the directory answers
	stops, err := dataaggregator.Lookup[[]*ctdf.Stop](context.Background(), aggregator, query.NearbyStops{Location: location, Count: 1})
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "Odenplan", stops[0].PrimaryName)

	stops, err = dataaggregator.Lookup[[]*ctdf.Stop](context.Background(), aggregator, query.NearbyStops{Location: location, Count: 2, Offline: true})
	require.NoError(t, err)
	assert.Len(t, stops, 2)
}

func TestLookupDepartureBoard(t *testing.T) {
	aggregator := newAggregator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Departure": [{
			"name": "Tunnelbana 17", "stop": "Odenplan", "stopExtId": "740021670",
			"time": "10:04:00", "date": "2024-03-12", "direction": "Skarpnäck T-bana (Stockholm kn)",
			"ProductAtStop": {"name": "Tunnelbana 17", "num": "17", "catCode": "5"}
		}]}`))
	})

	departures, err := dataaggregator.Lookup[[]*ctdf.DepartureBoard](context.Background(), aggregator, query.DepartureBoard{
		Stop: &ctdf.Stop{PrimaryIdentifier: "740021670"},
	})
	require.NoError(t, err)
	require.Len(t, departures, 1)

	assert.Equal(t, ctdf.TransportModeSubway, departures[0].Mode)
	assert.Equal(t, "Skarpnäck T-bana", departures[0].DestinationDisplay)
	assert.Equal(t, time.Date(2024, 3, 12, 10, 4, 0, 0, time.Local), departures[0].Time)
}

func TestLookupTripSearchUpstreamDown(t *testing.T) {
	aggregator := newAggregator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	itineraries, err := dataaggregator.Lookup[[]ctdf.Itinerary](context.Background(), aggregator, query.TripSearch{
		OriginStop:      &ctdf.Stop{PrimaryIdentifier: "740000001"},
		DestinationStop: &ctdf.Stop{PrimaryIdentifier: "740021670"},
	})
	require.NoError(t, err)
	assert.Empty(t, itineraries)
}
