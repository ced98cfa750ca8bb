package caching

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type redisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis. An unreachable server is logged, not
// fatal: lookups fail over to the database until it comes back.
func NewRedisCache(addr, password string, db int) ResponseCache {
	// Accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", parsedAddr).Msg("redis ping failed on initialization")
	} else {
		log.Debug().Str("addr", parsedAddr).Msg("redis connection established")
	}

	return &redisCache{client: client}
}

func (r *redisCache) Get(ctx context.Context, key string) (*CachedResponse, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return decode(data)
}

func (r *redisCache) Set(ctx context.Context, key string, resp *CachedResponse) error {
	data, err := encode(resp)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+key, data, 0).Err()
}

func (r *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	return r.client.Del(ctx, full...).Err()
}

// DeletePrefix walks the keyspace with SCAN rather than KEYS so a large
// cache does not block the server.
func (r *redisCache) DeletePrefix(ctx context.Context, prefixes ...string) error {
	for _, prefix := range prefixes {
		iter := r.client.Scan(ctx, 0, escapeGlob(keyPrefix+prefix)+"*", 100).Iterator()
		var batch []string
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == 100 {
				if err := r.client.Del(ctx, batch...).Err(); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(batch) > 0 {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCache) Close() error {
	return r.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats as wildcards.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
