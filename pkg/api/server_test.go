package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Zandri2k/Travel-Planner/pkg/app"
	"github.com/Zandri2k/Travel-Planner/pkg/config"
	"github.com/Zandri2k/Travel-Planner/pkg/stopdirectory"
	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stopsCSV = `stop_id,stop_name,stop_lat,stop_lon,location_type
740000001,Stockholm Centralstation,59.330136,18.058151,1
740021670,Odenplan,59.342781,18.049052,0
740000002,Göteborg Centralstation,57.708895,11.973479,1
`

const tripResponse = `{
  "Trip": {
    "duration": "PT9M",
    "Origin": {"name": "Stockholm Centralstation", "extId": "740000001", "lat": 59.330136, "lon": 18.058151, "time": "10:00:00", "date": "2024-03-12"},
    "Destination": {"name": "Odenplan", "extId": "740021670", "lat": 59.342781, "lon": 18.049052, "time": "10:09:00", "date": "2024-03-12"},
    "LegList": {"Leg": [{
      "type": "JNY",
      "direction": "Mörby centrum",
      "Origin": {"name": "Stockholm Centralstation", "extId": "740000001", "lat": 59.330136, "lon": 18.058151, "time": "10:00:00", "date": "2024-03-12"},
      "Destination": {"name": "Odenplan", "extId": "740021670", "lat": 59.342781, "lon": 18.049052, "time": "10:09:00", "date": "2024-03-12"},
      "Product": [{"name": "Tunnelbana 14", "num": "14", "catCode": "5"}],
      "Stops": {"Stop": [
        {"name": "Stockholm Centralstation", "extId": "740000001", "lat": 59.330136, "lon": 18.058151, "depTime": "10:00:00"},
        {"name": "Odenplan", "extId": "740021670", "lat": 59.342781, "lon": 18.049052, "arrTime": "10:09:00"}
      ]}
    }]}
  }
}`

const departureResponse = `{"Departure": [{
  "name": "Tunnelbana 14", "stop": "Stockholm Centralstation", "stopExtId": "740000001",
  "time": "10:04:00", "date": "2024-03-12", "direction": "Mörby centrum (Danderyd kn)",
  "ProductAtStop": {"name": "Tunnelbana 14", "num": "14", "catCode": "5"}
}]}`

const subwayWays = `{"elements": [
  {"type": "way", "id": 1, "tags": {"railway": "subway"},
   "geometry": [{"lat": 59.330136, "lon": 18.058151}, {"lat": 59.3365, "lon": 18.0535}, {"lat": 59.342781, "lon": 18.049052}]}
]}`

type upstream struct {
	tripStatus int
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/resrobot/trip":
		if u.tripStatus != 0 {
			w.WriteHeader(u.tripStatus)
			return
		}
		w.Write([]byte(tripResponse))
	case "/resrobot/departureBoard":
		w.Write([]byte(departureResponse))
	case "/resrobot/location.name":
		w.Write([]byte(`{"stopLocationOrCoordLocation": []}`))
	case "/overpass":
		w.Write([]byte(subwayWays))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestApp(t *testing.T, fake *upstream) *fiber.App {
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	directory, err := stopdirectory.Parse(strings.NewReader(stopsCSV))
	require.NoError(t, err)

	cfg := config.FromEnvironment(map[string]string{
		"RESEKOLLEN_RESROBOT_API_KEY": "test-key",
		"RESEKOLLEN_RESROBOT_URL":     server.URL + "/resrobot",
		"RESEKOLLEN_OVERPASS_URL":     server.URL + "/overpass",
		"RESEKOLLEN_OSRM_URL":         server.URL + "/osrm",
		"RESEKOLLEN_HTTP_TIMEOUT":     "5",
	})

	appContext, err := app.NewWithDirectory(cfg, directory, nil)
	require.NoError(t, err)

	return NewServer(appContext)
}

func get(t *testing.T, webApp *fiber.App, target string) (*http.Response, string) {
	resp, err := webApp.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestVersion(t *testing.T) {
	resp, body := get(t, newTestApp(t, &upstream{}), "/api/version")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"version": "v0.1"}`, body)
}

func TestCities(t *testing.T) {
	resp, body := get(t, newTestApp(t, &upstream{}), "/api/cities")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cities []stopdirectory.City
	require.NoError(t, json.Unmarshal([]byte(body), &cities))
	assert.Len(t, cities, 3)
}

func TestListStops(t *testing.T) {
	webApp := newTestApp(t, &upstream{})

	resp, _ := get(t, webApp, "/api/stops")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, webApp, "/api/stops?city=Atlantis")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := get(t, webApp, "/api/stops?city=Stockholm")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stops []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &stops))
	require.Len(t, stops, 2)
	assert.Equal(t, "Odenplan", stops[0]["PrimaryName"])
	assert.NotContains(t, stops[0], "LocationType")

	_, body = get(t, webApp, "/api/stops?city=Stockholm&q=central")
	require.NoError(t, json.Unmarshal([]byte(body), &stops))
	require.Len(t, stops, 1)
	assert.Equal(t, "Stockholm Centralstation", stops[0]["PrimaryName"])

	_, body = get(t, webApp, "/api/stops?q=centralstation&limit=1")
	require.NoError(t, json.Unmarshal([]byte(body), &stops))
	assert.Len(t, stops, 1)
}

func TestNearbyStops(t *testing.T) {
	webApp := newTestApp(t, &upstream{})

	resp, _ := get(t, webApp, "/api/stops/nearby?lat=north")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := get(t, webApp, "/api/stops/nearby?lat=59.3428&lon=18.0490&count=1&offline=true")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stops []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &stops))
	require.Len(t, stops, 1)
	assert.Equal(t, "Odenplan", stops[0]["PrimaryName"])
}

func TestStopDepartures(t *testing.T) {
	webApp := newTestApp(t, &upstream{})

	resp, body := get(t, webApp, "/api/stops/740000001/departures")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response struct {
		Board []map[string]any `json:"board"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	require.Len(t, response.Board, 1)
	assert.Equal(t, "Mörby centrum", response.Board[0]["DestinationDisplay"])
	assert.Equal(t, "subway", response.Board[0]["Mode"])

	resp, _ = get(t, webApp, "/api/stops/999/departures")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTrips(t *testing.T) {
	webApp := newTestApp(t, &upstream{})

	resp, _ := get(t, webApp, "/api/trips?from=Odenplan")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := get(t, webApp, "/api/trips?from=Stockholm+Centralstation&to=Odenplan")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response struct {
		Itineraries []map[string]any
		Summaries   []map[string]any
	}
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	require.Len(t, response.Summaries, 1)
	assert.Equal(t, "🚇", response.Summaries[0]["Icon"])
	assert.Equal(t, "14", response.Summaries[0]["Number"])
	assert.Equal(t, "0h9m", response.Summaries[0]["Duration"])
	assert.Equal(t, "Stockholm Centralstation: 10:00 > Odenplan: 10:09", response.Summaries[0]["Details"])

	legs := response.Itineraries[0]["Legs"].([]any)
	assert.NotContains(t, legs[0], "Waypoints")

	_, body = get(t, webApp, "/api/trips?from=Stockholm+Centralstation&to=Odenplan&detailed=1")
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	legs = response.Itineraries[0]["Legs"].([]any)
	assert.Contains(t, legs[0], "Waypoints")
}

func TestTripsUnknownStop(t *testing.T) {
	resp, _ := get(t, newTestApp(t, &upstream{}), "/api/trips?from=Atlantis&to=Odenplan")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTripGeometry(t *testing.T) {
	webApp := newTestApp(t, &upstream{})

	resp, body := get(t, webApp, "/api/trips/geometry?from=740000001&to=740021670")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get(fiber.HeaderContentType))

	collection, err := geojson.UnmarshalFeatureCollection([]byte(body))
	require.NoError(t, err)

	var lines []orb.LineString
	for _, feature := range collection.Features {
		if line, ok := feature.Geometry.(orb.LineString); ok {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 3)

	resp, _ = get(t, webApp, "/api/trips/geometry?from=740000001&to=740021670&trip=4")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, webApp, "/api/trips/geometry?from=740000001&to=740021670&trip=first")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboard(t *testing.T) {
	webApp := newTestApp(t, &upstream{})

	resp, body := get(t, webApp, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, body, `<option value="Odenplan">`)
	assert.NotContains(t, body, "Göteborg Centralstation")

	_, body = get(t, webApp, "/?city=G%C3%B6teborg")
	assert.Contains(t, body, "Göteborg Centralstation")
	assert.NotContains(t, body, `<option value="Odenplan">`)
}

func TestDashboardDepartures(t *testing.T) {
	_, body := get(t, newTestApp(t, &upstream{}), "/?from=Stockholm+Centralstation")

	assert.Contains(t, body, "Avgångar från Stockholm Centralstation")
	assert.Contains(t, body, "<td>14</td>")
	assert.Contains(t, body, "<td>Mörby centrum</td>")
}

func TestDashboardTrips(t *testing.T) {
	_, body := get(t, newTestApp(t, &upstream{}), "/?from=Stockholm+Centralstation&to=Odenplan")

	assert.Contains(t, body, "Stockholm Centralstation: 10:00 &gt; Odenplan: 10:09")
	assert.Contains(t, body, `<iframe src="/map?`)
	assert.Contains(t, body, "trip=0")
	assert.NotContains(t, body, "Inga resor hittades")
}

func TestDashboardNoTrips(t *testing.T) {
	_, body := get(t, newTestApp(t, &upstream{tripStatus: http.StatusInternalServerError}), "/?from=Stockholm+Centralstation&to=Odenplan")

	assert.Contains(t, body, "Inga resor hittades")
	assert.NotContains(t, body, "<iframe")
}

func TestDashboardUnknownStop(t *testing.T) {
	_, body := get(t, newTestApp(t, &upstream{}), "/?from=Atlantis&to=Odenplan")

	assert.Contains(t, body, "Okänd hållplats: Atlantis")
	assert.NotContains(t, body, "<iframe")
}

func TestMapPage(t *testing.T) {
	webApp := newTestApp(t, &upstream{})

	resp, body := get(t, webApp, "/map?from=740000001&to=740021670&trip=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "leaflet")
	assert.Contains(t, body, "LineString")

	resp, _ = get(t, webApp, "/map?from=740000001")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
