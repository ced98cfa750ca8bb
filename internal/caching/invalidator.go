package caching

import (
	"context"
	"errors"

	"inventorymanager/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Invalidation names the cached paths made stale by one committed mutation:
// exact keys plus key prefixes for cascades and renames.
type Invalidation struct {
	Keys     []string `json:"keys,omitempty"`
	Prefixes []string `json:"prefixes,omitempty"`
}

func (i Invalidation) Empty() bool {
	return len(i.Keys) == 0 && len(i.Prefixes) == 0
}

// Invalidator is called by services after a mutation commits. It never
// fails the request: the write already happened.
type Invalidator interface {
	Invalidate(ctx context.Context, inv Invalidation)
}

// Publisher fans an invalidation out to other instances.
type Publisher interface {
	Publish(ctx context.Context, inv Invalidation) error
}

type CacheInvalidator struct {
	cache     ResponseCache
	publisher Publisher
}

// NewInvalidator returns an invalidator for cache. publisher may be nil for
// a single instance.
func NewInvalidator(cache ResponseCache, publisher Publisher) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, publisher: publisher}
}

func (c *CacheInvalidator) Invalidate(ctx context.Context, inv Invalidation) {
	if inv.Empty() {
		return
	}
	// The client may already be gone; the purge must still happen.
	ctx = context.WithoutCancel(ctx)

	if err := c.Apply(ctx, inv); err != nil {
		log.Error().Err(err).Strs("keys", inv.Keys).Strs("prefixes", inv.Prefixes).
			Msg("cache invalidation failed")
	}
	if c.publisher != nil {
		if err := c.publisher.Publish(ctx, inv); err != nil {
			log.Warn().Err(err).Msg("publish cache invalidation failed")
		}
	}
}

// Apply removes the entries from the local cache only.
func (c *CacheInvalidator) Apply(ctx context.Context, inv Invalidation) error {
	var errs []error
	if len(inv.Keys) > 0 {
		if err := c.cache.Delete(ctx, inv.Keys...); err != nil {
			errs = append(errs, err)
		}
	}
	if len(inv.Prefixes) > 0 {
		if err := c.cache.DeletePrefix(ctx, inv.Prefixes...); err != nil {
			errs = append(errs, err)
		}
	}
	metrics.CacheInvalidations.Inc()
	if len(errs) > 0 {
		metrics.CacheErrors.WithLabelValues("invalidate").Inc()
		return errors.Join(errs...)
	}
	return nil
}
