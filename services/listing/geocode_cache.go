package listing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// CachedGeocoder memoizes geocode results in Redis. Addresses are
// stable, so a long TTL keeps repeat hosting requests off the upstream
// geocoding service. Cache failures fall through to the inner geocoder.
type CachedGeocoder struct {
	Inner  Geocoder
	Client *redis.Client
	TTL    time.Duration
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (GeoResult, error) {
	key := "geocode:" + strings.ToLower(strings.TrimSpace(address))

	if data, err := g.Client.Get(ctx, key).Bytes(); err == nil {
		var cached GeoResult
		if json.Unmarshal(data, &cached) == nil {
			return cached, nil
		}
	}

	result, err := g.Inner.Geocode(ctx, address)
	if err != nil {
		return GeoResult{}, err
	}

	if data, err := json.Marshal(result); err == nil {
		g.Client.Set(ctx, key, data, g.TTL)
	}
	return result, nil
}
