package redis_client

import (
	"context"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const connectAttempts = 5

// Connect returns nil without an error when no redis address is configured,
// callers then run without a cache
func Connect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddress == "" {
		log.Info().Msg("Skipping Redis setup")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDatabase,
	})

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 200 * time.Millisecond

	err := backoff.RetryNotify(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(backoff.WithMaxRetries(retryBackoff, connectAttempts), ctx), func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("retry", wait.String()).Msg("Redis not reachable yet")
	})
	if err != nil {
		client.Close()
		return nil, err
	}

	log.Info().Msgf("Redis client setup for %s", cfg.RedisAddress)

	return client, nil
}
