package hall

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
)

// Subscriber relays hall events from Redis pub/sub into the local hub.
type Subscriber struct {
	pubsub *goredis.PubSub
	hub    *Hub
	done   chan struct{}
}

func NewSubscriber(ctx context.Context, redisClient *goredis.Client, hub *Hub) *Subscriber {
	s := &Subscriber{
		pubsub: redisClient.Subscribe(ctx, eventsChannel),
		hub:    hub,
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Subscriber) run() {
	defer close(s.done)

	for msg := range s.pubsub.Channel() {
		s.hub.Broadcast([]byte(msg.Payload))
	}
}

// Close unsubscribes and waits for the relay goroutine to drain.
func (s *Subscriber) Close() {
	if err := s.pubsub.Close(); err != nil {
		slog.Warn("failed to close hall subscriber", "error", err)
	}
	<-s.done
}
