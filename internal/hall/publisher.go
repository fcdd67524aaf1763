package hall

import (
	"context"
	"encoding/json"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/metrics"
)

// eventsChannel is the Redis pub/sub channel carrying hall events between
// instances.
const eventsChannel = "spinwheel:events"

// envelope wraps an event with its type so hall displays can dispatch on it.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Publisher implements domain.EventPublisher. Events go through Redis pub/sub
// so every instance's hub sees them; if Redis is unavailable the event is
// delivered to the local hub directly so displays on this instance still
// follow the spin.
type Publisher struct {
	redisClient *goredis.Client
	hub         *Hub
}

var _ domain.EventPublisher = (*Publisher)(nil)

func NewPublisher(redisClient *goredis.Client, hub *Hub) *Publisher {
	return &Publisher{redisClient: redisClient, hub: hub}
}

func (p *Publisher) PublishSpinStarted(ctx context.Context, event domain.SpinStarted) {
	p.publish(ctx, domain.EventSpinStarted, event)
}

func (p *Publisher) PublishWheelFrame(ctx context.Context, event domain.WheelFrame) {
	p.publish(ctx, domain.EventWheelFrame, event)
}

func (p *Publisher) PublishCelebration(ctx context.Context, event domain.CelebrationAnnounced) {
	eventType := domain.EventCelebrationFinal
	if event.Provisional {
		eventType = domain.EventCelebrationProvisional
	}
	p.publish(ctx, eventType, event)
}

func (p *Publisher) publish(ctx context.Context, eventType string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal hall event", "type", eventType, "error", err)
		return
	}

	payload, err := json.Marshal(envelope{Type: eventType, Data: data})
	if err != nil {
		slog.Error("failed to marshal hall envelope", "type", eventType, "error", err)
		return
	}

	metrics.HallEventsTotal.WithLabelValues(eventType).Inc()

	if err := p.redisClient.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		slog.Warn("failed to publish hall event to redis, broadcasting locally", "type", eventType, "error", err)
		p.hub.Broadcast(payload)
	}
}
