package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Broker shares fan-out traffic between process instances through a
// Redis pub/sub channel. Every instance, the publisher included,
// receives messages through its subscription and rebroadcasts them to
// its local hub, so a listener connected to one instance observes
// events emitted by another. Without a Redis client the broker
// degrades to local-only delivery.
type Broker struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *zap.Logger
}

// NewBroker constructs a broker bridging the hub and Redis.
func NewBroker(client *redis.Client, channel string, hub *Hub, logger *zap.Logger) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker{client: client, channel: channel, hub: hub, logger: logger}
}

// Publish emits a message to every listener on every instance.
func (b *Broker) Publish(ctx context.Context, message string) error {
	if b.client == nil {
		b.hub.Broadcast(message)
		return nil
	}
	return b.client.Publish(ctx, b.channel, message).Err()
}

// Listen consumes the shared channel until the context is cancelled,
// rebroadcasting every received message locally. Intended to run as a
// goroutine started at process boot.
func (b *Broker) Listen(ctx context.Context) {
	if b.client == nil {
		return
	}

	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	b.logger.Sugar().Infow("realtime broker listening", "channel", b.channel)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.hub.Broadcast(msg.Payload)
		}
	}
}
