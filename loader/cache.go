package loader

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/enomcdcdash/enomdash/engine"
	"github.com/enomcdcdash/enomdash/logger"
	"github.com/enomcdcdash/enomdash/metrics"
)

// LoadFunc reads one source. Load is the default.
type LoadFunc func(Source, ...Option) (*engine.Dataset, error)

// Cache memoizes datasets for the lifetime of the process. Concurrent first
// reads of the same source share one load. Cached datasets are immutable and
// safe to hand to any number of renders.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*engine.Dataset
	gen     uint64 // bumped by every invalidation
	group   singleflight.Group

	load LoadFunc
	opts []Option
	log  logger.Logger
}

// NewCache creates an empty cache. opts are passed to every load.
func NewCache(log logger.Logger, opts ...Option) *Cache {
	if log == nil {
		log = logger.NewNop()
	}
	return &Cache{
		entries: make(map[string]*engine.Dataset),
		load:    Load,
		opts:    opts,
		log:     log,
	}
}

// WithLoadFunc replaces the loader, mostly for tests.
func (c *Cache) WithLoadFunc(fn LoadFunc) *Cache {
	c.load = fn
	return c
}

// Get returns the dataset for src, loading it on first use.
// Failed loads are not cached.
func (c *Cache) Get(src Source) (*engine.Dataset, error) {
	key := src.key()

	c.mu.RLock()
	ds, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		metrics.RecordLoad(src.label(), metrics.LoadHit)
		return ds, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		cached, ok := c.entries[key]
		gen := c.gen
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := c.load(src, c.opts...)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		// A load that raced an invalidation may have read stale data.
		stored := c.gen == gen
		if stored {
			c.entries[key] = loaded
		}
		c.mu.Unlock()
		c.log.Info("dataset loaded", "source", src.label(), "path", src.Path, "rows", loaded.Len(), "cached", stored)
		return loaded, nil
	})
	if err != nil {
		metrics.RecordLoad(src.label(), metrics.LoadError)
		c.log.Error("dataset load failed", "source", src.label(), "error", err)
		return nil, err
	}
	if shared {
		c.log.Debug("dataset load shared", "source", src.label())
	}
	metrics.RecordLoad(src.label(), metrics.LoadMiss)
	return v.(*engine.Dataset), nil
}

// Invalidate drops the cached dataset for src so the next Get reloads it.
func (c *Cache) Invalidate(src Source) {
	c.mu.Lock()
	delete(c.entries, src.key())
	c.gen++
	c.mu.Unlock()
	c.group.Forget(src.key())
}

// InvalidateAll drops every cached dataset and returns how many there were.
func (c *Cache) InvalidateAll() int {
	c.mu.Lock()
	n := len(c.entries)
	c.gen++
	for k := range c.entries {
		delete(c.entries, k)
		c.group.Forget(k)
	}
	c.mu.Unlock()
	c.log.Info("dataset cache cleared", "entries", n)
	return n
}

// Len reports the number of cached datasets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
