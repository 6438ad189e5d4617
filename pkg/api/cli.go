package api

import (
	"github.com/Zandri2k/Travel-Planner/pkg/app"
	"github.com/Zandri2k/Travel-Planner/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Provides the trip dashboard and its JSON API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run dashboard web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					appContext, err := app.New(c.Context, config.Load())
					if err != nil {
						return err
					}
					defer appContext.Close()

					log.Info().Str("listen", c.String("listen")).Msg("Starting dashboard")

					return SetupServer(c.String("listen"), appContext)
				},
			},
		},
	}
}
