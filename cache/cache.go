// Package cache holds read results per entity collection until a write marks
// the collection dirty.
package cache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Tag names a cached entity collection.
type Tag string

const (
	Rooms        Tag = "rooms"
	Bookings     Tag = "bookings"
	Transactions Tag = "transactions"
	ScenicSpots  Tag = "scenicSpots"
	TicketSales  Tag = "ticketSales"
)

// Invalidator drops every cached read of the given collections.
type Invalidator interface {
	Invalidate(tags ...Tag)
}

// Reader serves a read from cache or loads and remembers it.
type Reader interface {
	Invalidator
	Fetch(ctx context.Context, tag Tag, key string, load func(context.Context) (any, error)) (any, error)
}

// QueryCache is a Reader safe for concurrent use. Concurrent misses on the
// same key share one load.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[Tag]map[string]any
	// generation is bumped on invalidation so a load that started before a
	// write is not stored after it.
	generation map[Tag]uint64
	group      singleflight.Group
}

func New() *QueryCache {
	return &QueryCache{
		entries:    map[Tag]map[string]any{},
		generation: map[Tag]uint64{},
	}
}

// Fetch returns the cached read for key or loads it. Loads started in
// different generations of tag are never shared. The load runs detached from
// ctx so a cancelled caller does not fail the others waiting on it.
func (c *QueryCache) Fetch(ctx context.Context, tag Tag, key string, load func(context.Context) (any, error)) (any, error) {
	c.mu.RLock()
	if v, ok := c.entries[tag][key]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	gen := c.generation[tag]
	c.mu.RUnlock()

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%s|%d|%s", tag, gen, key), func() (any, error) {
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generation[tag] == gen {
			if c.entries[tag] == nil {
				c.entries[tag] = map[string]any{}
			}
			c.entries[tag][key] = v
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *QueryCache) Invalidate(tags ...Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range tags {
		delete(c.entries, tag)
		c.generation[tag]++
	}
}

// Len reports how many reads are cached for tag.
func (c *QueryCache) Len(tag Tag) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries[tag])
}

// Get is the typed form of Reader.Fetch.
func Get[T any](ctx context.Context, r Reader, tag Tag, key string, load func(context.Context) (T, error)) (T, error) {
	v, err := r.Fetch(ctx, tag, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Noop never caches. Useful where reads must always hit the store.
type Noop struct{}

func (Noop) Fetch(ctx context.Context, _ Tag, _ string, load func(context.Context) (any, error)) (any, error) {
	return load(ctx)
}

func (Noop) Invalidate(...Tag) {}
