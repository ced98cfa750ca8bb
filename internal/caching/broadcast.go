package caching

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// InvalidationSubject carries invalidations between API instances.
const InvalidationSubject = "inventorymanager.cache.invalidate"

type invalidationMessage struct {
	Origin string `json:"origin"`
	Invalidation
}

// NATSBroadcaster publishes invalidations so peers sharing no cache (for
// example each with an embedded badger store) drop the same entries.
type NATSBroadcaster struct {
	nc     *nats.Conn
	origin string
}

func NewNATSBroadcaster(nc *nats.Conn, origin string) *NATSBroadcaster {
	return &NATSBroadcaster{nc: nc, origin: origin}
}

func (b *NATSBroadcaster) Publish(_ context.Context, inv Invalidation) error {
	data, err := json.Marshal(invalidationMessage{Origin: b.origin, Invalidation: inv})
	if err != nil {
		return err
	}
	return b.nc.Publish(InvalidationSubject, data)
}

// InvalidationSubscriber applies peers' invalidations to the local cache.
// It runs under the process supervisor.
type InvalidationSubscriber struct {
	nc          *nats.Conn
	origin      string
	invalidator *CacheInvalidator
}

func NewInvalidationSubscriber(nc *nats.Conn, origin string, invalidator *CacheInvalidator) *InvalidationSubscriber {
	return &InvalidationSubscriber{nc: nc, origin: origin, invalidator: invalidator}
}

func (s *InvalidationSubscriber) Serve(ctx context.Context) error {
	msgs := make(chan *nats.Msg, 64)
	sub, err := s.nc.ChanSubscribe(InvalidationSubject, msgs)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", InvalidationSubject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-msgs:
			if err := s.handle(ctx, msg.Data); err != nil {
				log.Warn().Err(err).Msg("apply remote cache invalidation failed")
			}
		}
	}
}

func (s *InvalidationSubscriber) handle(ctx context.Context, data []byte) error {
	var msg invalidationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("decode invalidation: %w", err)
	}
	if msg.Origin == s.origin {
		return nil
	}
	return s.invalidator.Apply(ctx, msg.Invalidation)
}

func (s *InvalidationSubscriber) String() string {
	return "cache-invalidation-subscriber"
}
