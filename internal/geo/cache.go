package geo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/maypok86/otter/v2"
	"go.uber.org/zap"

	"github.com/damien/match-engine/internal/config"
	"github.com/damien/match-engine/internal/types"
)

// Store is an optional external key-value tier behind the in-memory cache.
// Get returns (nil, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Entry is a cached travel estimate with its expiry.
type Entry struct {
	DurationMinutes float64   `json:"duration_minutes"`
	DistanceMeters  float64   `json:"distance_meters"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Cache memoizes travel-time lookups. Reads and writes for a key are
// linearizable through the backing caches; duplicate concurrent misses for
// the same key may both hit the upstream provider (at-most-twice semantics),
// with the last write winning.
type Cache struct {
	provider Provider
	mem      *otter.Cache[string, Entry]
	store    Store
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCache builds a cache over the given provider. store may be nil to run
// purely in-memory; logger may be nil.
func NewCache(provider Provider, store Store, cfg config.GeoConfig, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = 50_000
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	mem := otter.Must(&otter.Options[string, Entry]{
		MaximumSize:      size,
		ExpiryCalculator: otter.ExpiryWriting[string, Entry](ttl),
	})
	return &Cache{
		provider: provider,
		mem:      mem,
		store:    store,
		ttl:      ttl,
		logger:   logger,
	}
}

// Lookup returns the travel estimate for a route, serving from cache within
// TTL and calling the upstream provider on a miss.
func (c *Cache) Lookup(ctx context.Context, origin, destination types.Location, mode types.TransportMode) (*TravelEstimate, error) {
	key := cacheKey(origin, destination, mode)

	if entry, ok := c.mem.GetIfPresent(key); ok {
		// Lazy expiry double-check; otter evicts on its own schedule.
		if time.Now().Before(entry.ExpiresAt) {
			return &TravelEstimate{DurationMinutes: entry.DurationMinutes, DistanceMeters: entry.DistanceMeters}, nil
		}
		c.mem.Invalidate(key)
	}

	if c.store != nil {
		if estimate := c.fromStore(ctx, key); estimate != nil {
			return estimate, nil
		}
	}

	if c.provider == nil {
		return nil, ErrNoProvider
	}

	estimate, err := c.provider.Lookup(ctx, origin, destination, mode)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		DurationMinutes: estimate.DurationMinutes,
		DistanceMeters:  estimate.DistanceMeters,
		ExpiresAt:       time.Now().Add(c.ttl),
	}
	c.mem.Set(key, entry)
	if c.store != nil {
		data, merr := json.Marshal(entry)
		if merr == nil {
			if serr := c.store.Set(ctx, key, data, c.ttl); serr != nil {
				// The lookup succeeded; a store failure only costs a future hit.
				c.logger.Warn("geo cache store write failed", zap.Error(serr))
			}
		}
	}
	return estimate, nil
}

// fromStore reads the external tier and backfills the in-memory tier on a hit.
func (c *Cache) fromStore(ctx context.Context, key string) *TravelEstimate {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("geo cache store read failed", zap.Error(err))
		return nil
	}
	if data == nil {
		return nil
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("geo cache store entry corrupt", zap.Error(err))
		return nil
	}
	if !time.Now().Before(entry.ExpiresAt) {
		return nil
	}
	c.mem.Set(key, entry)
	return &TravelEstimate{DurationMinutes: entry.DurationMinutes, DistanceMeters: entry.DistanceMeters}
}

// Invalidate drops the in-memory entry for a route, forcing a fresh lookup.
func (c *Cache) Invalidate(origin, destination types.Location, mode types.TransportMode) {
	c.mem.Invalidate(cacheKey(origin, destination, mode))
}

// Size returns the estimated number of in-memory entries.
func (c *Cache) Size() int {
	return c.mem.EstimatedSize()
}

// Stats describes the cache's current shape, for logs and introspection.
type Stats struct {
	Entries       int           `json:"entries"`
	TTL           time.Duration `json:"ttl"`
	ExternalStore bool          `json:"external_store"`
}

// Stats returns a snapshot of the cache's state.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries:       c.mem.EstimatedSize(),
		TTL:           c.ttl,
		ExternalStore: c.store != nil,
	}
}

func cacheKey(origin, destination types.Location, mode types.TransportMode) string {
	h := sha256.New()
	h.Write([]byte(origin.Key()))
	h.Write([]byte{0})
	h.Write([]byte(destination.Key()))
	h.Write([]byte{0})
	h.Write([]byte(mode))
	return hex.EncodeToString(h.Sum(nil))
}
