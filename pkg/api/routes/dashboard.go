package routes

import (
	"bytes"
	_ "embed"
	"errors"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/app"
	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/query"
	"github.com/Zandri2k/Travel-Planner/pkg/stopdirectory"
	"github.com/Zandri2k/Travel-Planner/pkg/tripplanner"
	"github.com/Zandri2k/Travel-Planner/pkg/util"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const noTripsMessage = "Inga resor hittades"

//go:embed dashboard.html.tmpl
var dashboardTemplateSource string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardTemplateSource))

type departureRow struct {
	Icon      string
	Line      string
	Wait      string
	Direction string
}

type tripRow struct {
	Index    int
	Selected bool
	tripplanner.Summary
}

type dashboardPage struct {
	Cities       []stopdirectory.City
	SelectedCity string
	Stops        []*ctdf.Stop

	From    string
	To      string
	Date    string
	Time    string
	Arrival bool

	Warnings []string
	Message  string

	Origin     *ctdf.Stop
	Departures []departureRow

	Trips  []tripRow
	MapURL string
}

func DashboardRouter(router fiber.Router, appContext *app.Context) {
	router.Get("/", func(c *fiber.Ctx) error {
		return renderDashboard(c, appContext)
	})
	router.Get("/map", func(c *fiber.Ctx) error {
		return renderMap(c, appContext)
	})
}

func renderDashboard(c *fiber.Ctx, appContext *app.Context) error {
	page := dashboardPage{
		Cities:  appContext.Cities,
		From:    c.Query("from"),
		To:      c.Query("to"),
		Date:    c.Query("date"),
		Time:    c.Query("time"),
		Arrival: c.QueryBool("arrival", false),
	}

	city, found := stopdirectory.CityByName(appContext.Cities, c.Query("city"))
	if !found && len(appContext.Cities) > 0 {
		city = appContext.Cities[0]
	}
	page.SelectedCity = city.Name

	stops, err := dataaggregator.Lookup[[]*ctdf.Stop](c.UserContext(), appContext.Aggregator, query.StopsWithinRadius{
		Center:   city.Center(),
		RadiusKm: city.RadiusKm,
	})
	if err != nil {
		log.Error().Err(err).Str("city", city.Name).Msg("Failed to list stops for city")
	}
	page.Stops = stops

	switch {
	case page.From != "" && page.To != "":
		fillTrips(c, appContext, &page)
	case page.From != "":
		fillDepartures(c, appContext, &page)
	}

	var body bytes.Buffer
	if err := dashboardTemplate.Execute(&body, page); err != nil {
		log.Error().Err(err).Msg("Failed to render dashboard")
		return sendError(c, fiber.StatusInternalServerError, "Could not render dashboard")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body.Bytes())
}

func fillDepartures(c *fiber.Ctx, appContext *app.Context, page *dashboardPage) {
	origin, err := appContext.Planner.ResolveStop(c.UserContext(), page.From)
	if err != nil {
		log.Warn().Err(err).Str("stop", page.From).Msg("Could not resolve origin")
		page.Warnings = append(page.Warnings, unknownStopWarning(page.From))
		return
	}
	page.Origin = origin

	board, err := appContext.Planner.Departures(c.UserContext(), origin)
	if err != nil {
		log.Error().Err(err).Str("stop", origin.PrimaryIdentifier).Msg("Failed to get departure board")
	}

	now := time.Now()
	for _, departure := range board {
		page.Departures = append(page.Departures, departureRow{
			Icon:      departure.Mode.Icon(),
			Line:      departure.Product.DisplayNumber(),
			Wait:      util.FormatWait(departure.Time, now),
			Direction: departure.DestinationDisplay,
		})
	}
}

func fillTrips(c *fiber.Ctx, appContext *app.Context, page *dashboardPage) {
	request := tripplanner.Request{
		From:             page.From,
		To:               page.To,
		Date:             page.Date,
		Time:             page.Time,
		SearchForArrival: page.Arrival,
	}

	result, err := appContext.Planner.Plan(c.UserContext(), request)
	if errors.Is(err, stopdirectory.ErrStopNotFound) {
		unknown := page.To
		if _, originErr := appContext.Planner.ResolveStop(c.UserContext(), page.From); originErr != nil {
			unknown = page.From
		}
		page.Warnings = append(page.Warnings, unknownStopWarning(unknown))
		return
	} else if err != nil {
		if !errors.Is(err, tripplanner.ErrNoTrips) {
			log.Error().Err(err).Msg("Trip search failed")
		}
		page.Message = noTripsMessage
		return
	}

	selected, err := parseTripIndex(c)
	if err != nil || selected >= len(result.Itineraries) {
		selected = 0
	}

	now := time.Now()
	for index, itinerary := range result.Itineraries {
		page.Trips = append(page.Trips, tripRow{
			Index:    index,
			Selected: index == selected,
			Summary:  tripplanner.Summarise(itinerary, now),
		})
	}

	page.MapURL = "/map?" + tripValues(request, selected).Encode()
}

func renderMap(c *fiber.Ctx, appContext *app.Context) error {
	request, err := parseTripRequest(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}
	index, err := parseTripIndex(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := appContext.Planner.Plan(c.UserContext(), request)
	if status, failed := planFailure(err); failed {
		return sendError(c, status, err.Error())
	}
	if index >= len(result.Itineraries) {
		return sendError(c, fiber.StatusNotFound, noTripsMessage)
	}

	rendered, _ := appContext.Planner.Geometry(c.UserContext(), result.Itineraries[index])

	var body bytes.Buffer
	if err := rendered.HTML(&body); err != nil {
		log.Error().Err(err).Msg("Failed to render map")
		return sendError(c, fiber.StatusInternalServerError, "Could not render map")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body.Bytes())
}

func tripValues(request tripplanner.Request, index int) url.Values {
	values := url.Values{}
	values.Set("from", request.From)
	values.Set("to", request.To)
	if request.Date != "" {
		values.Set("date", request.Date)
	}
	if request.Time != "" {
		values.Set("time", request.Time)
	}
	if request.SearchForArrival {
		values.Set("arrival", "true")
	}
	values.Set("trip", strconv.Itoa(index))
	return values
}

func unknownStopWarning(input string) string {
	return "Okänd hållplats: " + input
}
