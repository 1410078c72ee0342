package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	precioCachePrefix = "precio:sku:"
	precioCacheTTL    = 5 * time.Minute
)

// PrecioCache caches the public price-check lookups in Redis, keyed by SKU.
// Misses fall through to Postgres; writes to a product invalidate its entry.
type PrecioCache struct {
	rdb *redis.Client
}

func NewPrecioCache(rdb *redis.Client) *PrecioCache {
	return &PrecioCache{rdb: rdb}
}

// Get returns the cached JSON payload for a SKU, or false on miss.
func (c *PrecioCache) Get(ctx context.Context, sku string, out interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, precioCachePrefix+sku).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn().Str("sku", sku).Err(err).Msg("precio_cache: stale entry, dropping")
		c.Invalidate(ctx, sku)
		return false
	}
	return true
}

// Set stores the payload with a short TTL; cache errors are not fatal.
func (c *PrecioCache) Set(ctx context.Context, sku string, payload interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, precioCachePrefix+sku, data, precioCacheTTL).Err(); err != nil {
		log.Warn().Str("sku", sku).Err(err).Msg("precio_cache: set failed")
	}
}

func (c *PrecioCache) Invalidate(ctx context.Context, sku string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, precioCachePrefix+sku).Err(); err != nil {
		log.Warn().Str("sku", sku).Err(err).Msg("precio_cache: invalidate failed")
	}
}
