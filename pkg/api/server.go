package api

import (
	"github.com/Zandri2k/Travel-Planner/pkg/api/routes"
	"github.com/Zandri2k/Travel-Planner/pkg/app"
	"github.com/Zandri2k/Travel-Planner/pkg/http_server"
	"github.com/gofiber/fiber/v2"
)

func NewServer(appContext *app.Context) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(http_server.NewLogger())

	group := webApp.Group("/api")

	group.Get("version", routes.APIVersion)

	routes.CitiesRouter(group.Group("/cities"), appContext)
	routes.StopsRouter(group.Group("/stops"), appContext)
	routes.TripsRouter(group.Group("/trips"), appContext)

	routes.DashboardRouter(webApp, appContext)

	return webApp
}

func SetupServer(listen string, appContext *app.Context) error {
	return NewServer(appContext).Listen(listen)
}
