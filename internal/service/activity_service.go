// FILE: internal/service/activity_service.go
package service

import (
	"context"
	"fmt"

	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/contract"
	"focus-shield-be/pkg/events"
	pktNats "focus-shield-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IActivityService interface {
	// Consume starts recording enforcement events into the activity trail.
	// When a NATS subscriber is available the durable consumer on the SHIELD
	// stream is used, so restarts replay what was missed; otherwise the
	// in-process bus serves as the source.
	Consume(ctx context.Context) error

	// GetRecent returns the newest activity rows for the popup panel.
	GetRecent(ctx context.Context, limit, offset int) (*dto.ActivityListResponse, error)
}

type activityService struct {
	activityRepo contract.ActivityRepository
	natsSub      *pktNats.Subscriber
	pubSub       *gochannel.GoChannel
	logger       logger.ILogger
}

func NewActivityService(
	activityRepo contract.ActivityRepository,
	natsSub *pktNats.Subscriber,
	pubSub *gochannel.GoChannel,
	log logger.ILogger,
) IActivityService {
	return &activityService{
		activityRepo: activityRepo,
		natsSub:      natsSub,
		pubSub:       pubSub,
		logger:       log,
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	if s.natsSub != nil {
		return s.natsSub.Subscribe("shield.>", "shield-activity", func(ctx context.Context, event events.Event) error {
			return s.record(ctx, event)
		})
	}

	messages, err := s.pubSub.Subscribe(ctx, EventsTopic)
	if err != nil {
		return err
	}
	go func() {
		for msg := range messages {
			s.processBusMessage(ctx, msg)
		}
	}()
	return nil
}

func (s *activityService) processBusMessage(ctx context.Context, msg *message.Message) {
	event, err := decodeEnvelope(msg.Payload)
	if err != nil {
		s.logger.Error("Activity", "Failed to decode event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}
	if err := s.record(ctx, event); err != nil {
		msg.Nack()
		return
	}
	msg.Ack()
}

func (s *activityService) record(ctx context.Context, event events.Event) error {
	data := event.Payload()
	urlKey, _ := data["url"].(string)

	activity := &entity.Activity{
		Id:        uuid.New(),
		Type:      event.EventType(),
		URLKey:    urlKey,
		Message:   describeEvent(event.EventType(), data),
		Metadata:  data,
		CreatedAt: event.Timestamp(),
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Error("Activity", "Failed to persist activity", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return err
	}
	return nil
}

func (s *activityService) GetRecent(ctx context.Context, limit, offset int) (*dto.ActivityListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.activityRepo.FindRecent(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Activity", "Failed to load activity trail", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	resp := &dto.ActivityListResponse{
		Items: make([]dto.ActivityItem, 0, len(items)),
		Total: total,
	}
	for _, a := range items {
		resp.Items = append(resp.Items, dto.ActivityItem{
			Id:        a.Id.String(),
			Type:      a.Type,
			URL:       a.URLKey,
			Message:   a.Message,
			Metadata:  a.Metadata,
			CreatedAt: a.CreatedAt.UnixMilli(),
		})
	}
	return resp, nil
}

func describeEvent(eventType string, data map[string]interface{}) string {
	switch eventType {
	case events.TypeSessionStarted:
		return fmt.Sprintf("Focus session started for %v", data["domain"])
	case events.TypeSessionEnded:
		return fmt.Sprintf("Focus session for %v ended", data["domain"])
	case events.TypeSessionExpired:
		return fmt.Sprintf("Focus session for %v expired", data["domain"])
	case events.TypeURLAllowed:
		return fmt.Sprintf("Allowed %v", data["url"])
	case events.TypeURLBlocked:
		return fmt.Sprintf("Blocked %v", data["url"])
	case events.TypeStateReset:
		return "All enforcement state was reset"
	default:
		return fmt.Sprintf("Event %s", eventType)
	}
}
