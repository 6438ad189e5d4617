package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/util"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultResRobotURL = "https://api.resrobot.se/v2.1"
	defaultOverpassURL = "https://overpass-api.de/api/interpreter"
	defaultOSRMURL     = "http://router.project-osrm.org"
	defaultStopsFile   = "data/stops.txt"
)

// APIKeys holds the credential slots for the upstream services. Only ResRobot is
// required, the others are carried so deployments can share one secrets file.
type APIKeys struct {
	ResRobot     string
	Trafikverket string
	GTFSSverige  string
	GTFSRegional string
	GTFS3        string
	GoogleMaps   string
}

type Config struct {
	Keys APIKeys

	ResRobotURL string
	OverpassURL string
	OSRMURL     string

	StopsFile   string
	HTTPTimeout time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDatabase int
	CacheTTL      time.Duration
}

// Load reads a .env file if one exists and then the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	return FromEnvironment(util.GetEnvironmentVariables())
}

func FromEnvironment(env map[string]string) *Config {
	cfg := &Config{
		Keys: APIKeys{
			ResRobot:     env["RESEKOLLEN_RESROBOT_API_KEY"],
			Trafikverket: env["RESEKOLLEN_TRAFIKVERKET_API_KEY"],
			GTFSSverige:  env["RESEKOLLEN_GTFS_SVERIGE_API_KEY"],
			GTFSRegional: env["RESEKOLLEN_GTFS_REGIONAL_API_KEY"],
			GTFS3:        env["RESEKOLLEN_GTFS3_API_KEY"],
			GoogleMaps:   env["RESEKOLLEN_GOOGLE_MAPS_API_KEY"],
		},

		ResRobotURL: util.EnvOrDefault(env, "RESEKOLLEN_RESROBOT_URL", defaultResRobotURL),
		OverpassURL: util.EnvOrDefault(env, "RESEKOLLEN_OVERPASS_URL", defaultOverpassURL),
		OSRMURL:     util.EnvOrDefault(env, "RESEKOLLEN_OSRM_URL", defaultOSRMURL),

		StopsFile:   util.EnvOrDefault(env, "RESEKOLLEN_STOPS_FILE", defaultStopsFile),
		HTTPTimeout: time.Duration(util.EnvIntOrDefault(env, "RESEKOLLEN_HTTP_TIMEOUT", 60)) * time.Second,

		RedisAddress:  env["RESEKOLLEN_REDIS_ADDRESS"],
		RedisPassword: env["RESEKOLLEN_REDIS_PASSWORD"],
		RedisDatabase: util.EnvIntOrDefault(env, "RESEKOLLEN_REDIS_DATABASE", 0),
		CacheTTL:      time.Duration(util.EnvIntOrDefault(env, "RESEKOLLEN_CACHE_TTL", 90)) * time.Minute,
	}

	if cfg.Keys.ResRobot == "" {
		log.Warn().Msg("RESEKOLLEN_RESROBOT_API_KEY is not set, journey lookups will return nothing")
	}

	return cfg
}
