// FILE: internal/service/notifier_service.go
package service

import (
	"context"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/memory"
	"focus-shield-be/pkg/blocksurface"
	"focus-shield-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Broadcaster pushes typed messages to connected extension contexts.
// *websocket.Hub is the production implementation.
type Broadcaster interface {
	Broadcast(kind string, payload interface{})
}

type INotifierService interface {
	// Consume subscribes to the in-process event bus and pushes every event
	// to connected extension contexts until ctx is cancelled.
	Consume(ctx context.Context) error
}

type notifierService struct {
	pubSub       *gochannel.GoChannel
	hub          Broadcaster
	tabRegistry  *memory.TabRegistry
	exemptList   *ExemptList
	blockPageURL string
	logger       logger.ILogger
}

func NewNotifierService(
	pubSub *gochannel.GoChannel,
	hub Broadcaster,
	tabRegistry *memory.TabRegistry,
	exemptList *ExemptList,
	blockPageURL string,
	log logger.ILogger,
) INotifierService {
	return &notifierService{
		pubSub:       pubSub,
		hub:          hub,
		tabRegistry:  tabRegistry,
		exemptList:   exemptList,
		blockPageURL: blockPageURL,
		logger:       log,
	}
}

func (s *notifierService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, EventsTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *notifierService) processMessage(msg *message.Message) {
	event, err := decodeEnvelope(msg.Payload)
	if err != nil {
		s.logger.Error("Notifier", "Failed to decode event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed, retrying won't help
		return
	}

	switch event.Type {
	case events.TypeURLAllowed, events.TypeURLBlocked:
		s.hub.Broadcast(constant.WSKindDecision, event.Data)

	case events.TypeSessionStarted:
		s.hub.Broadcast(constant.WSKindStateChanged, map[string]interface{}{
			"event": event.Type,
			"data":  event.Data,
		})

	case events.TypeSessionEnded, events.TypeSessionExpired, events.TypeStateReset:
		s.hub.Broadcast(constant.WSKindStateChanged, map[string]interface{}{
			"event": event.Type,
			"data":  event.Data,
		})
		s.redirectOpenTabs()

	default:
		s.logger.Warn("Notifier", "Unknown event type", map[string]interface{}{"type": event.Type})
	}

	msg.Ack()
}

// redirectOpenTabs tells every tracked tab still sitting on a non-exempt page
// to navigate to the session-ended surface, then forgets the tabs. Without
// this, pages allowed during the session would linger after it ends.
func (s *notifierService) redirectOpenTabs() {
	tabs := s.tabRegistry.All()
	for tabId, lastURL := range tabs {
		if s.exemptList.Matches(lastURL) {
			continue
		}
		target := blocksurface.Redirect{
			Reason:      blocksurface.ReasonSessionEnded,
			OriginalURL: lastURL,
		}.Build(s.blockPageURL)

		s.hub.Broadcast(constant.WSKindTabRedirect, map[string]interface{}{
			"tab_id":       tabId,
			"redirect_url": target,
		})
	}
	s.tabRegistry.Clear()
	if len(tabs) > 0 {
		s.logger.Info("Notifier", "Dispatched end-of-session redirects", map[string]interface{}{"tabs": len(tabs)})
	}
}
