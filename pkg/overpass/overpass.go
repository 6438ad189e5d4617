package overpass

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

	"github.com/Zandri2k/Travel-Planner/pkg/geometry"
	"github.com/Zandri2k/Travel-Planner/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/rs/zerolog/log"
)

// Client runs way queries against an Overpass API interpreter endpoint
type Client struct {
	URL string

	// Server side query timeout in seconds
	Timeout int

	HTTPClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		URL:     endpoint,
		Timeout: int(timeout.Seconds()),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type response struct {
	Remark   string    `json:"remark"`
	Elements []element `json:"elements"`
}

type element struct {
	Type     string    `json:"type"`
	ID       osm.WayID `json:"id"`
	Tags     osm.Tags  `json:"tags"`
	Geometry []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"geometry"`
}

func (e element) LineString() orb.LineString {
	line := make(orb.LineString, 0, len(e.Geometry))
	for _, point := range e.Geometry {
		line = append(line, orb.Point{point.Lon, point.Lat})
	}
	return line
}

func (c *Client) Features(ctx context.Context, filters []geometry.TagFilter, area orb.Polygon) ([]orb.LineString, error) {
	return c.run(ctx, BuildQuery(filters, area, c.Timeout))
}

func (c *Client) run(ctx context.Context, query string) ([]orb.LineString, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	startTime := time.Now()
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
		return nil, fmt.Errorf("overpass returned status %d: %s", resp.StatusCode, util.TrimString(string(byteValue), 200))
	}

	var result response
	if err := json.Unmarshal(byteValue, &result); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}

	if strings.Contains(result.Remark, "error") {
		return nil, fmt.Errorf("overpass query failed: %s", result.Remark)
	}

	var lines []orb.LineString
	for _, element := range result.Elements {
		if element.Type != "way" || len(element.Geometry) < 2 {
			continue
		}
		log.Trace().Int64("way", int64(element.ID)).Str("name", element.Tags.Find("name")).Msg("Overpass way")
		lines = append(lines, element.LineString())
	}

	log.Debug().
		Int("ways", len(lines)).
		Str("latency", time.Since(startTime).String()).
		Msg("Overpass query finished")

	return lines, nil
}

// BuildQuery renders the Overpass QL selecting every way matching any filter
// inside the polygon, with inline geometry
func BuildQuery(filters []geometry.TagFilter, area orb.Polygon, timeout int) string {
	poly := polyFilter(area)

	var query strings.Builder
	fmt.Fprintf(&query, "[out:json][timeout:%d];(", timeout)
	for _, filter := range filters {
		values := make([]string, 0, len(filter.Values))
		for _, value := range filter.Values {
			values = append(values, escape(value))
		}

		fmt.Fprintf(&query, `way["%s"~"^(%s)$"](poly:"%s");`, escape(filter.Key), strings.Join(values, "|"), poly)
	}
	query.WriteString(");out geom;")

	return query.String()
}

func polyFilter(area orb.Polygon) string {
	if len(area) == 0 {
		return ""
	}

	ring := area[0]
	if ring.Closed() && len(ring) > 1 {
		ring = ring[:len(ring)-1]
	}

	coords := make([]string, 0, len(ring)*2)
	for _, point := range ring {
		coords = append(coords,
			strconv.FormatFloat(point.Lat(), 'f', 6, 64),
			strconv.FormatFloat(point.Lon(), 'f', 6, 64),
		)
	}

	return strings.Join(coords, " ")
}

func escape(value string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
}
