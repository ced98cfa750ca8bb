package caching

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings tunes the circuit breaker around a cache backend.
type BreakerSettings struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{FailureThreshold: 5, OpenTimeout: 10 * time.Second}
}

// breakerCache stops calling a failing backend until OpenTimeout elapses.
// While open every call fails fast with gobreaker.ErrOpenState, which the
// caller treats like any other cache failure.
//
// A failed delete leaves the backend possibly holding stale entries, so the
// cache turns dirty: nothing is read or written until a full purge succeeds.
type breakerCache struct {
	inner ResponseCache
	cb    *gobreaker.CircuitBreaker[*CachedResponse]
	dirty atomic.Bool
}

func NewBreakerCache(inner ResponseCache, s BreakerSettings) ResponseCache {
	cb := gobreaker.NewCircuitBreaker[*CachedResponse](gobreaker.Settings{
		Name:        "response-cache",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("cache circuit breaker changed state")
		},
	})
	return &breakerCache{inner: inner, cb: cb}
}

func (b *breakerCache) Get(ctx context.Context, key string) (*CachedResponse, error) {
	if err := b.purgeIfDirty(ctx); err != nil {
		return nil, err
	}
	return b.cb.Execute(func() (*CachedResponse, error) {
		return b.inner.Get(ctx, key)
	})
}

func (b *breakerCache) Set(ctx context.Context, key string, resp *CachedResponse) error {
	if err := b.purgeIfDirty(ctx); err != nil {
		return err
	}
	_, err := b.cb.Execute(func() (*CachedResponse, error) {
		return nil, b.inner.Set(ctx, key, resp)
	})
	return err
}

func (b *breakerCache) Delete(ctx context.Context, keys ...string) error {
	_, err := b.cb.Execute(func() (*CachedResponse, error) {
		return nil, b.inner.Delete(ctx, keys...)
	})
	if err != nil {
		b.dirty.Store(true)
	}
	return err
}

func (b *breakerCache) DeletePrefix(ctx context.Context, prefixes ...string) error {
	_, err := b.cb.Execute(func() (*CachedResponse, error) {
		return nil, b.inner.DeletePrefix(ctx, prefixes...)
	})
	if err != nil {
		b.dirty.Store(true)
	}
	return err
}

func (b *breakerCache) purgeIfDirty(ctx context.Context) error {
	if !b.dirty.Load() {
		return nil
	}
	_, err := b.cb.Execute(func() (*CachedResponse, error) {
		return nil, b.inner.DeletePrefix(ctx, "")
	})
	if err != nil {
		return err
	}
	b.dirty.Store(false)
	log.Info().Msg("response cache purged after failed invalidation")
	return nil
}

func (b *breakerCache) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx)
}

func (b *breakerCache) Close() error {
	return b.inner.Close()
}
