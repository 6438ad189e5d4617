package routes

import (
	"errors"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/app"
	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/stopdirectory"
	"github.com/Zandri2k/Travel-Planner/pkg/tripplanner"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type tripsResponse struct {
	Origin      *ctdf.Stop            `groups:"basic"`
	Destination *ctdf.Stop            `groups:"basic"`
	Itineraries []ctdf.Itinerary      `groups:"basic"`
	Summaries   []tripplanner.Summary `groups:"basic"`
}

func TripsRouter(router fiber.Router, appContext *app.Context) {
	router.Get("/", func(c *fiber.Ctx) error {
		return searchTrips(c, appContext)
	})
	router.Get("/geometry", func(c *fiber.Ctx) error {
		return getTripGeometry(c, appContext)
	})
}

func searchTrips(c *fiber.Ctx, appContext *app.Context) error {
	request, err := parseTripRequest(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := appContext.Planner.Plan(c.UserContext(), request)
	if status, failed := planFailure(err); failed {
		return sendError(c, status, err.Error())
	}

	now := time.Now()
	response := tripsResponse{
		Origin:      result.Origin,
		Destination: result.Destination,
		Itineraries: result.Itineraries,
		Summaries:   make([]tripplanner.Summary, 0, len(result.Itineraries)),
	}
	for _, itinerary := range result.Itineraries {
		response.Summaries = append(response.Summaries, tripplanner.Summarise(itinerary, now))
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	return sendReduced(c, response, groups...)
}

func getTripGeometry(c *fiber.Ctx, appContext *app.Context) error {
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
		return sendError(c, fiber.StatusNotFound, "Trip index out of range")
	}

	rendered, _ := appContext.Planner.Geometry(c.UserContext(), result.Itineraries[index])
	geoJSON, err := rendered.GeoJSON()
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode GeoJSON")
		return sendError(c, fiber.StatusInternalServerError, "Could not encode geometry")
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(geoJSON)
}

// planFailure maps planner errors onto a status. No trips is not a failure for
// the caller, the empty list is returned as is.
func planFailure(err error) (int, bool) {
	switch {
	case err == nil, errors.Is(err, tripplanner.ErrNoTrips):
		return 0, false
	case errors.Is(err, stopdirectory.ErrStopNotFound):
		return fiber.StatusNotFound, true
	default:
		return fiber.StatusInternalServerError, true
	}
}
