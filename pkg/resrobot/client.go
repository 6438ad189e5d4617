package resrobot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

type Client struct {
	BaseURL  string
	AccessID string

	HTTPClient *http.Client
}

func NewClient(baseURL string, accessID string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		AccessID: accessID,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type TripQuery struct {
	OriginID      string
	DestinationID string

	// Date and Time default to now when left empty
	Date string
	Time string

	SearchForArrival bool
}

// Trips returns the trip candidates between two stops, nil if the lookup failed
func (c *Client) Trips(ctx context.Context, q TripQuery) *TripList {
	now := time.Now()
	if q.Date == "" {
		q.Date = now.Format(DateFormat)
	}
	if q.Time == "" {
		q.Time = now.Format(TimeFormat)
	}

	params := url.Values{}
	params.Set("originId", q.OriginID)
	params.Set("destId", q.DestinationID)
	params.Set("date", q.Date)
	params.Set("time", q.Time)
	params.Set("passlist", "true")
	params.Set("showPassingPoints", "true")
	if q.SearchForArrival {
		params.Set("searchForArrival", "1")
	} else {
		params.Set("searchForArrival", "0")
	}

	var tripList TripList
	if err := c.get(ctx, "trip", params, &tripList); err != nil {
		log.Warn().Err(err).Str("origin", q.OriginID).Str("destination", q.DestinationID).Msg("Failed to fetch trips")
		return nil
	}

	return &tripList
}

func (c *Client) DepartureBoard(ctx context.Context, stopID string) *DepartureBoard {
	params := url.Values{}
	params.Set("id", stopID)
	params.Set("passlist", "1")

	var board DepartureBoard
	if err := c.get(ctx, "departureBoard", params, &board); err != nil {
		log.Warn().Err(err).Str("stop", stopID).Msg("Failed to fetch departure board")
		return nil
	}

	return &board
}

func (c *Client) ArrivalBoard(ctx context.Context, stopID string) *ArrivalBoard {
	params := url.Values{}
	params.Set("id", stopID)

	var board ArrivalBoard
	if err := c.get(ctx, "arrivalBoard", params, &board); err != nil {
		log.Warn().Err(err).Str("stop", stopID).Msg("Failed to fetch arrival board")
		return nil
	}

	return &board
}

func (c *Client) NearbyStops(ctx context.Context, lat float64, lon float64, maxResults int) []StopLocation {
	params := url.Values{}
	params.Set("originCoordLat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("originCoordLong", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("maxNo", strconv.Itoa(maxResults))

	var locations LocationList
	if err := c.get(ctx, "location.nearbystops", params, &locations); err != nil {
		log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Failed to fetch nearby stops")
		return nil
	}

	return locations.StopLocations()
}

// ResolveStopID returns the best location.name match for a free text stop name
func (c *Client) ResolveStopID(ctx context.Context, name string) *StopLocation {
	stops := c.searchLocations(ctx, name)
	if len(stops) == 0 {
		return nil
	}

	return &stops[0]
}

// NameFromID looks up the name of the stop whose extId equals the given id
func (c *Client) NameFromID(ctx context.Context, extID string) string {
	for _, stop := range c.searchLocations(ctx, extID) {
		if stop.ExtID == extID {
			return stop.Name
		}
	}

	return ""
}

func (c *Client) searchLocations(ctx context.Context, input string) []StopLocation {
	params := url.Values{}
	params.Set("input", input)

	var locations LocationList
	if err := c.get(ctx, "location.name", params, &locations); err != nil {
		log.Warn().Err(err).Str("input", input).Msg("Failed to search locations")
		return nil
	}

	return locations.StopLocations()
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("format", "json")
	params.Set("accessId", c.AccessID)

	requestURL := fmt.Sprintf("%s/%s?%s", c.BaseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	byteValue, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var apiError struct {
			ErrorCode string `json:"errorCode"`
			ErrorText string `json:"errorText"`
		}
		json.Unmarshal(byteValue, &apiError)

		return fmt.Errorf("%s returned status %d %s %s", endpoint, resp.StatusCode, apiError.ErrorCode, apiError.ErrorText)
	}

	if err := json.Unmarshal(byteValue, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}

	return nil
}
