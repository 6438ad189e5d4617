package main

import (
	"os"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/api"
	"github.com/Zandri2k/Travel-Planner/pkg/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// stdout stays clean for plan --geojson
	if os.Getenv("RESEKOLLEN_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = log.Output(os.Stderr)
	}

	if os.Getenv("RESEKOLLEN_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	// ResRobot times are Swedish local time
	if location, err := time.LoadLocation("Europe/Stockholm"); err == nil {
		time.Local = location
	} else {
		log.Warn().Err(err).Msg("Failed to load Europe/Stockholm, using system time zone")
	}

	cliApp := &cli.App{
		Name:        "resekollen",
		Description: "Swedish public transit dashboard with route geometry reconstruction",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			app.RegisterPlanCLI(),
			app.RegisterStopsCLI(),
		},
	}

	err := cliApp.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
