package overpass

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Zandri2k/Travel-Planner/pkg/geometry"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/paulmach/orb"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CachedClient keeps Overpass results in redis keyed on the rendered query,
// identical hops across requests hit the cache instead of the public API
type CachedClient struct {
	Client *Client
	Cache  *cache.Cache[string]
}

func NewCachedClient(client *Client, redisClient *redis.Client, expiration time.Duration) *CachedClient {
	redisStore := redisstore.NewRedis(redisClient, store.WithExpiration(expiration))

	return &CachedClient{
		Client: client,
		Cache:  cache.New[string](redisStore),
	}
}

func (c *CachedClient) Features(ctx context.Context, filters []geometry.TagFilter, area orb.Polygon) ([]orb.LineString, error) {
	query := BuildQuery(filters, area, c.Client.Timeout)
	key := cacheKey(query)

	if cached, err := c.Cache.Get(ctx, key); err == nil {
		var lines []orb.LineString
		if err := json.Unmarshal([]byte(cached), &lines); err == nil {
			log.Debug().Str("key", key).Msg("Overpass cache hit")
			return lines, nil
		}
	}

	lines, err := c.Client.run(ctx, query)
	if err != nil {
		return nil, err
	}

	// Empty results are cached too, the resolver retries with a different polygon anyway
	encoded, err := json.Marshal(lines)
	if err == nil {
		if err := c.Cache.Set(ctx, key, string(encoded)); err != nil {
			log.Warn().Err(err).Msg("Failed to cache overpass result")
		}
	}

	return lines, nil
}

func cacheKey(query string) string {
	sum := sha1.Sum([]byte(query))
	return "resekollen:overpass:" + hex.EncodeToString(sum[:])
}
