package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/config"
	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/query"
	"github.com/Zandri2k/Travel-Planner/pkg/tripplanner"
	"github.com/Zandri2k/Travel-Planner/pkg/util"
	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterPlanCLI() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Search trips between two stops and resolve the route geometry",
		ArgsUsage: "<from> <to>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "date",
				Usage: "travel date as YYYY-MM-DD, defaults to today",
			},
			&cli.StringFlag{
				Name:  "time",
				Usage: "travel time as HH:MM, defaults to now",
			},
			&cli.BoolFlag{
				Name:  "arrival",
				Usage: "treat date and time as the arrival time",
			},
			&cli.IntFlag{
				Name:  "trip",
				Value: 0,
				Usage: "index of the itinerary to resolve",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "dump the resolved legs",
			},
			&cli.BoolFlag{
				Name:  "geojson",
				Usage: "write the map of the selected itinerary as GeoJSON to stdout",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("plan needs exactly two stops", 1)
			}

			appContext, err := New(c.Context, config.Load())
			if err != nil {
				return err
			}
			defer appContext.Close()

			result, err := appContext.Planner.Plan(c.Context, tripplanner.Request{
				From:             c.Args().Get(0),
				To:               c.Args().Get(1),
				Date:             c.String("date"),
				Time:             c.String("time"),
				SearchForArrival: c.Bool("arrival"),
			})
			if errors.Is(err, tripplanner.ErrNoTrips) {
				color.Yellow("Inga resor hittades")
				return nil
			} else if err != nil {
				return err
			}

			if !c.Bool("geojson") {
				printItineraries(os.Stdout, result, time.Now())
			}

			index := c.Int("trip")
			if index < 0 || index >= len(result.Itineraries) {
				return cli.Exit(fmt.Sprintf("trip index %d out of range, %d itineraries found", index, len(result.Itineraries)), 1)
			}

			rendered, geometries := appContext.Planner.Geometry(c.Context, result.Itineraries[index])

			if c.Bool("debug") {
				pretty.Println(geometries)
			}

			if c.Bool("geojson") {
				data, err := rendered.GeoJSON()
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}

			for _, legGeometry := range geometries {
				line := color.New(color.FgGreen)
				if len(legGeometry.Skipped) > 0 {
					line = color.New(color.FgYellow)
				}
				line.Printf("  %-20s %d segments, %d skipped hops\n", legGeometry.Mode.String(), len(legGeometry.Segments), len(legGeometry.Skipped))
			}

			return nil
		},
	}
}

func printItineraries(w io.Writer, result *tripplanner.Result, now time.Time) {
	header := color.New(color.Bold)
	header.Fprintf(w, "%s → %s\n", result.Origin.PrimaryName, result.Destination.PrimaryName)

	for i, itinerary := range result.Itineraries {
		summary := tripplanner.Summarise(itinerary, now)

		fmt.Fprintf(w, "[%d] %s %-6s %-6s ⏳ %s\n", i, summary.Icon, summary.Number, summary.Wait, summary.Duration)
		color.New(color.Faint).Fprintf(w, "    %s\n", summary.Details)
	}
}

func RegisterStopsCLI() *cli.Command {
	return &cli.Command{
		Name:  "stops",
		Usage: "Look up stops",
		Subcommands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "search the stop directory by name",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
					},
				},
				Action: func(c *cli.Context) error {
					appContext, err := New(c.Context, config.Load())
					if err != nil {
						return err
					}
					defer appContext.Close()

					stops, err := dataaggregator.Lookup[[]*ctdf.Stop](c.Context, appContext.Aggregator, query.StopSearch{
						Term:  c.Args().First(),
						Limit: c.Int("limit"),
					})
					if err != nil {
						return err
					}

					for _, stop := range stops {
						fmt.Printf("%-12s %s\n", stop.PrimaryIdentifier, stop.PrimaryName)
					}

					return nil
				},
			},
			{
				Name:  "nearby",
				Usage: "list the stops closest to a coordinate",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:     "lat",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     "lon",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "count",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "only use the local stop directory",
					},
				},
				Action: func(c *cli.Context) error {
					appContext, err := New(c.Context, config.Load())
					if err != nil {
						return err
					}
					defer appContext.Close()

					stops, err := dataaggregator.Lookup[[]*ctdf.Stop](c.Context, appContext.Aggregator, query.NearbyStops{
						Location: ctdf.NewLocation(c.Float64("lat"), c.Float64("lon")),
						Count:    c.Int("count"),
						Offline:  c.Bool("offline"),
					})
					if err != nil {
						return err
					}

					for _, stop := range stops {
						fmt.Printf("%-12s %6dm  %s\n", stop.PrimaryIdentifier, stop.DistanceMetres, util.CleanLocationName(stop.PrimaryName))
					}

					return nil
				},
			},
		},
	}
}
