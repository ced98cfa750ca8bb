// Package caching stores rendered GET responses keyed by request path and
// removes them once a mutation has committed.
package caching

import (
	"context"

	"github.com/goccy/go-json"
)

// keyPrefix namespaces response entries inside a shared store.
const keyPrefix = "inventorymanager:response:"

// CachedResponse is a rendered response ready to be replayed.
type CachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ResponseCache is a path-keyed response store. Entries never expire; they
// are removed only by Delete or DeletePrefix.
type ResponseCache interface {
	// Get returns nil without error on a miss.
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Set(ctx context.Context, key string, resp *CachedResponse) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefixes ...string) error
	Ping(ctx context.Context) error
	Close() error
}

func encode(resp *CachedResponse) ([]byte, error) {
	return json.Marshal(resp)
}

func decode(data []byte) (*CachedResponse, error) {
	var resp CachedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// noopCache is used when caching is disabled.
type noopCache struct{}

func NewNoopCache() ResponseCache { return noopCache{} }

func (noopCache) Get(context.Context, string) (*CachedResponse, error) { return nil, nil }
func (noopCache) Set(context.Context, string, *CachedResponse) error   { return nil }
func (noopCache) Delete(context.Context, ...string) error              { return nil }
func (noopCache) DeletePrefix(context.Context, ...string) error        { return nil }
func (noopCache) Ping(context.Context) error                           { return nil }
func (noopCache) Close() error                                         { return nil }
