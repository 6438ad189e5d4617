package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

var ErrNoRoute = errors.New("osrm returned no route")

// Router asks an OSRM instance for driving routes
type Router struct {
	BaseURL string
	Profile string

	HTTPClient *http.Client
}

func NewRouter(baseURL string, timeout time.Duration) *Router {
	return &Router{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Profile: "driving",
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route returns the full overview geometry of the best route between both points
func (r *Router) Route(ctx context.Context, from orb.Point, to orb.Point) (orb.LineString, error) {
	profile := r.Profile
	if profile == "" {
		profile = "driving"
	}

	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full", r.BaseURL, profile, from.Lon(), from.Lat(), to.Lon(), to.Lat())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	httpClient := r.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	byteValue, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm returned status %d", resp.StatusCode)
	}

	var response routeResponse
	if err := json.Unmarshal(byteValue, &response); err != nil {
		return nil, fmt.Errorf("decoding osrm response: %w", err)
	}

	if response.Code != "" && response.Code != "Ok" {
		return nil, fmt.Errorf("%w: %s %s", ErrNoRoute, response.Code, response.Message)
	}
	if len(response.Routes) == 0 || response.Routes[0].Geometry == "" {
		return nil, ErrNoRoute
	}

	return Decode(response.Routes[0].Geometry)
}

// Decode turns a precision 5 encoded polyline into orb points
func Decode(encoded string) (orb.LineString, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decoding polyline: %w", err)
	}

	line := make(orb.LineString, 0, len(coords))
	for _, coord := range coords {
		line = append(line, orb.Point{coord[1], coord[0]})
	}

	return line, nil
}
