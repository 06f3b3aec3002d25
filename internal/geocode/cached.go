package geocode

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/placepin/internal/cache"
)

// DefaultMemoryTTL is how long NewMemory keeps a lookup in process.
const DefaultMemoryTTL = 30 * time.Minute

// NewMemory returns an in-process cache for Cached.Memory.
func NewMemory(ttl time.Duration) *gocache.Cache {
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}
	return gocache.New(ttl, 2*ttl)
}

// Cached serves repeated queries from memory, then from a LookupCache on
// disk. Misses, including empty results, are stored after a successful
// lookup; errors never are. Either layer may be nil.
type Cached struct {
	Inner    Geocoder
	Cache    *cache.LookupCache
	Memory   *gocache.Cache
	Provider string
}

func (c *Cached) Lookup(ctx context.Context, query string) ([]Result, error) {
	disk := c.Cache != nil && c.Cache.Dir != ""
	if !disk && c.Memory == nil {
		return c.Inner.Lookup(ctx, query)
	}
	key := cache.LookupKey(c.Provider, query)
	if c.Memory != nil {
		if v, ok := c.Memory.Get(key); ok {
			if out, ok := v.([]Result); ok {
				log.Debug().Str("query", query).Msg("geocode memory hit")
				return append([]Result{}, out...), nil
			}
		}
	}
	if disk {
		if data, ok, err := c.Cache.Get(ctx, key); err == nil && ok {
			var out []Result
			if err := json.Unmarshal(data, &out); err == nil {
				if out == nil {
					out = []Result{}
				}
				log.Debug().Str("query", query).Msg("geocode cache hit")
				c.remember(key, out)
				return out, nil
			}
		}
	}
	out, err := c.Inner.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}
	c.remember(key, out)
	if disk {
		if data, err := json.Marshal(out); err == nil {
			if err := c.Cache.Save(ctx, key, data); err != nil {
				log.Warn().Err(err).Str("query", query).Msg("geocode cache save failed")
			}
		}
	}
	return out, nil
}

func (c *Cached) remember(key string, out []Result) {
	if c.Memory == nil {
		return
	}
	c.Memory.SetDefault(key, append([]Result{}, out...))
}
