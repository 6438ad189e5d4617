package routes

import (
	"github.com/Zandri2k/Travel-Planner/pkg/app"
	"github.com/gofiber/fiber/v2"
)

func CitiesRouter(router fiber.Router, appContext *app.Context) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(appContext.Cities)
	})
}
