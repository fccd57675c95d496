package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
)

const cacheExpiration = 90 * time.Minute

// CachedGeocoder wraps another Geocoder and keeps successful lookups in a cache
type CachedGeocoder struct {
	Geocoder Geocoder
	Cache    *cache.Cache[string]
}

func NewRedisCachedGeocoder(geocoder Geocoder, redisClient redisstore.RedisClientInterface) *CachedGeocoder {
	redisStore := redisstore.NewRedis(redisClient, store.WithExpiration(cacheExpiration))

	return &CachedGeocoder{
		Geocoder: geocoder,
		Cache:    cache.New[string](redisStore),
	}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (Coordinates, error) {
	cacheKey := cacheKeyFor(address)

	if cachedValue, err := c.Cache.Get(ctx, cacheKey); err == nil {
		var coordinates Coordinates
		if err := json.Unmarshal([]byte(cachedValue), &coordinates); err == nil {
			log.Debug().Str("address", address).Msg("Geocode cache hit")
			return coordinates, nil
		}
	}

	coordinates, err := c.Geocoder.Geocode(ctx, address)
	if err != nil {
		return Coordinates{}, err
	}

	encoded, err := json.Marshal(coordinates)
	if err != nil {
		log.Warn().Err(err).Str("address", address).Msg("Failed to encode geocode result for cache")
		return coordinates, nil
	}

	if err := c.Cache.Set(ctx, cacheKey, string(encoded)); err != nil {
		log.Warn().Err(err).Str("address", address).Msg("Failed to store geocode result in cache")
	}

	return coordinates, nil
}

func cacheKeyFor(address string) string {
	return fmt.Sprintf("tfl-bdd/geocode/%s", strings.ToLower(strings.TrimSpace(address)))
}
