// FILE: internal/service/event_bus_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/pkg/events"
	pktNats "focus-shield-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventsTopic is the in-process watermill topic every enforcement event
// crosses. The notifier worker fans it out to connected contexts.
const EventsTopic = "SHIELD_EVENTS"

type IEventBusService interface {
	// Publish fans an event out: always to the in-process bus, and to NATS
	// JetStream when a connection exists. Delivery is best-effort; a missing
	// consumer never fails the caller.
	Publish(ctx context.Context, event events.Event)
}

// eventEnvelope is the wire form shared by the watermill and NATS paths.
type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt int64                  `json:"occurred_at"`
}

func decodeEnvelope(payload []byte) (events.BaseEvent, error) {
	var env eventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return events.BaseEvent{}, err
	}
	return events.BaseEvent{
		Type:       env.Type,
		Data:       env.Data,
		OccurredAt: time.UnixMilli(env.OccurredAt),
	}, nil
}

type eventBusService struct {
	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	logger  logger.ILogger
}

func NewEventBusService(pubSub *gochannel.GoChannel, natsPub *pktNats.Publisher, log logger.ILogger) IEventBusService {
	return &eventBusService{
		pubSub:  pubSub,
		natsPub: natsPub,
		logger:  log,
	}
}

func (s *eventBusService) Publish(ctx context.Context, event events.Event) {
	env := eventEnvelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp().UnixMilli(),
	}
	payload, err := json.Marshal(env)
	if err != nil {
		s.logger.Error("EventBus", "Failed to marshal event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(EventsTopic, msg); err != nil {
		s.logger.Error("EventBus", "Failed to publish to in-process bus", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}

	if s.natsPub != nil {
		pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := s.natsPub.Publish(pubCtx, event); err != nil {
			s.logger.Warn("EventBus", "Failed to mirror event to NATS", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		}
	}
}
