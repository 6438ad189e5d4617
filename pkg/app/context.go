package app

import (
	"context"
	"fmt"

	"github.com/Zandri2k/Travel-Planner/pkg/config"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/source/localstops"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/source/resrobotapi"
	"github.com/Zandri2k/Travel-Planner/pkg/geometry"
	"github.com/Zandri2k/Travel-Planner/pkg/osrm"
	"github.com/Zandri2k/Travel-Planner/pkg/overpass"
	"github.com/Zandri2k/Travel-Planner/pkg/redis_client"
	"github.com/Zandri2k/Travel-Planner/pkg/resrobot"
	"github.com/Zandri2k/Travel-Planner/pkg/stopdirectory"
	"github.com/Zandri2k/Travel-Planner/pkg/tripplanner"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Context carries everything built once at startup. Nothing in it is mutated
// afterwards so handlers can share it between concurrent requests.
type Context struct {
	Config *config.Config

	Stops  *stopdirectory.Directory
	Cities []stopdirectory.City

	Aggregator *dataaggregator.Aggregator
	Planner    *tripplanner.Planner

	Redis *redis.Client
}

func New(ctx context.Context, cfg *config.Config) (*Context, error) {
	directory, err := stopdirectory.Load(cfg.StopsFile)
	if err != nil {
		return nil, fmt.Errorf("loading stops: %w", err)
	}

	redisClient, err := redis_client.Connect(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Continuing without the Overpass cache")
		redisClient = nil
	}

	return NewWithDirectory(cfg, directory, redisClient)
}

// NewWithDirectory wires the sources and the planner around an already loaded directory
func NewWithDirectory(cfg *config.Config, directory *stopdirectory.Directory, redisClient *redis.Client) (*Context, error) {
	cities, err := stopdirectory.LoadCities()
	if err != nil {
		return nil, err
	}

	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(localstops.Source{Directory: directory})
	aggregator.RegisterSource(resrobotapi.Source{
		Client: resrobot.NewClient(cfg.ResRobotURL, cfg.Keys.ResRobot, cfg.HTTPTimeout),
	})
	aggregator.RegisterSource(localstops.Source{Directory: directory, Fallback: true})

	overpassClient := overpass.NewClient(cfg.OverpassURL, cfg.HTTPTimeout)

	var features geometry.FeatureQuerier = overpassClient
	if redisClient != nil {
		features = overpass.NewCachedClient(overpassClient, redisClient, cfg.CacheTTL)
	}

	return &Context{
		Config:     cfg,
		Stops:      directory,
		Cities:     cities,
		Aggregator: aggregator,
		Planner: &tripplanner.Planner{
			Aggregator: aggregator,
			Resolver: &geometry.Resolver{
				Features: features,
				Roads:    osrm.NewRouter(cfg.OSRMURL, cfg.HTTPTimeout),
			},
		},
		Redis: redisClient,
	}, nil
}

func (c *Context) Close() {
	if c.Redis != nil {
		c.Redis.Close()
	}
}
