package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Zandri2k/Travel-Planner/pkg/app"
	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/query"
	"github.com/Zandri2k/Travel-Planner/pkg/stopdirectory"
	"github.com/Zandri2k/Travel-Planner/pkg/util"
	"github.com/gofiber/fiber/v2"
)

func StopsRouter(router fiber.Router, appContext *app.Context) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listStops(c, appContext)
	})
	router.Get("/nearby", func(c *fiber.Ctx) error {
		return listNearbyStops(c, appContext)
	})
	router.Get("/:identifier/departures", func(c *fiber.Ctx) error {
		return getStopBoard(c, appContext, ctdf.DepartureBoardRecordTypeDeparture)
	})
	router.Get("/:identifier/arrivals", func(c *fiber.Ctx) error {
		return getStopBoard(c, appContext, ctdf.DepartureBoardRecordTypeArrival)
	})
}

func listStops(c *fiber.Ctx, appContext *app.Context) error {
	cityName := c.Query("city")
	term := c.Query("q")
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "Parameter limit should be an integer")
	}

	var stops []*ctdf.Stop

	switch {
	case cityName != "":
		city, found := stopdirectory.CityByName(appContext.Cities, cityName)
		if !found {
			return sendError(c, fiber.StatusNotFound, "Unknown city")
		}

		stops, err = dataaggregator.Lookup[[]*ctdf.Stop](c.UserContext(), appContext.Aggregator, query.StopsWithinRadius{
			Center:   city.Center(),
			RadiusKm: city.RadiusKm,
		})

		if term != "" {
			lowerTerm := strings.ToLower(term)
			util.InPlaceFilter(&stops, func(stop *ctdf.Stop) bool {
				return strings.Contains(strings.ToLower(stop.PrimaryName), lowerTerm)
			})
		}
		if limit > 0 && len(stops) > limit {
			stops = stops[:limit]
		}
	case term != "":
		stops, err = dataaggregator.Lookup[[]*ctdf.Stop](c.UserContext(), appContext.Aggregator, query.StopSearch{
			Term:  term,
			Limit: limit,
		})
	default:
		return sendError(c, fiber.StatusBadRequest, "A city or search term must be applied to the request")
	}

	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return sendReduced(c, stops, "basic")
}

func listNearbyStops(c *fiber.Ctx, appContext *app.Context) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return sendError(c, fiber.StatusBadRequest, "Parameters lat and lon should be decimal degrees")
	}

	count, err := strconv.Atoi(c.Query("count", "10"))
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "Parameter count should be an integer")
	}

	stops, err := dataaggregator.Lookup[[]*ctdf.Stop](c.UserContext(), appContext.Aggregator, query.NearbyStops{
		Location: ctdf.NewLocation(lat, lon),
		Count:    count,
		Offline:  c.QueryBool("offline", false),
	})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return sendReduced(c, stops, "basic", "detailed")
}

func getStopBoard(c *fiber.Ctx, appContext *app.Context, boardType ctdf.DepartureBoardRecordType) error {
	stop, err := appContext.Planner.ResolveStop(c.UserContext(), c.Params("identifier"))
	if errors.Is(err, stopdirectory.ErrStopNotFound) {
		return sendError(c, fiber.StatusNotFound, "Could not find Stop matching Stop Identifier")
	} else if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	var board []*ctdf.DepartureBoard
	if boardType == ctdf.DepartureBoardRecordTypeArrival {
		board, err = appContext.Planner.Arrivals(c.UserContext(), stop)
	} else {
		board, err = appContext.Planner.Departures(c.UserContext(), stop)
	}
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return sendReduced(c, map[string]interface{}{
		"stop":  stop,
		"board": board,
	}, "basic")
}
