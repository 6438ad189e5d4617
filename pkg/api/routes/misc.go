package routes

import (
	"errors"
	"strconv"

	"github.com/Zandri2k/Travel-Planner/pkg/tripplanner"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

func parseTripRequest(c *fiber.Ctx) (tripplanner.Request, error) {
	request := tripplanner.Request{
		From:             c.Query("from"),
		To:               c.Query("to"),
		Date:             c.Query("date"),
		Time:             c.Query("time"),
		SearchForArrival: c.QueryBool("arrival", false),
	}

	if request.From == "" || request.To == "" {
		return request, errors.New("Parameters from and to are required")
	}

	return request, nil
}

func parseTripIndex(c *fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Query("trip", "0"))
	if err != nil || index < 0 {
		return 0, errors.New("Parameter trip should be a positive integer")
	}
	return index, nil
}

func sendReduced(c *fiber.Ctx, data interface{}, groups ...string) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, data)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce response",
		})
	}

	return c.JSON(reduced)
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}
