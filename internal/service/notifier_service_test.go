package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/memory"
	"focus-shield-be/pkg/blocksurface"
	"focus-shield-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
)

// recordingHub captures broadcasts in place of the websocket hub.
type recordingHub struct {
	mu       sync.Mutex
	messages []hubMessage
}

type hubMessage struct {
	kind    string
	payload interface{}
}

func (h *recordingHub) Broadcast(kind string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, hubMessage{kind: kind, payload: payload})
}

func (h *recordingHub) byKind(kind string) []hubMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []hubMessage
	for _, m := range h.messages {
		if m.kind == kind {
			out = append(out, m)
		}
	}
	return out
}

func TestExpiredSessionRedirectsOpenTabs(t *testing.T) {
	const (
		classifierURL = "http://127.0.0.1:8000"
		blockPage     = "chrome-extension://shield/blocked.html"
	)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	nop := logger.NewNopLogger()
	bus := NewEventBusService(pubSub, nil, nop)

	sessionService := NewSessionService(
		memory.NewSessionRepository(), memory.NewDecisionRepository(),
		memory.NewInflightRepository(), bus, nop)

	tabRegistry := memory.NewTabRegistry()
	exemptList := NewExemptList(classifierURL, blockPage, nil)
	hub := &recordingHub{}

	notifier := NewNotifierService(pubSub, hub, tabRegistry, exemptList, blockPage, nop)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	assert.NoError(t, notifier.Consume(ctx))

	_, err := sessionService.Start(ctx, &dto.StartSessionRequest{
		Domain:     "study for the networking exam",
		DurationMs: 10,
	})
	assert.NoError(t, err)

	openTabs := map[int]string{
		1: "https://wiki.example.com/tcp",
		2: "https://videos.example.com/lecture-4",
		3: "https://forum.example.com/thread/99",
	}
	for tabId, url := range openTabs {
		tabRegistry.Upsert(tabId, url)
	}
	// A tab already sitting on the classifier never gets bounced
	tabRegistry.Upsert(7, classifierURL+"/classify")

	time.Sleep(20 * time.Millisecond)
	expired, err := sessionService.ExpireSweep(ctx)
	assert.NoError(t, err)
	assert.True(t, expired)

	assert.Eventually(t, func() bool {
		return len(hub.byKind(constant.WSKindTabRedirect)) == len(openTabs)
	}, 2*time.Second, 10*time.Millisecond)

	seen := map[int]string{}
	for _, m := range hub.byKind(constant.WSKindTabRedirect) {
		directive := m.payload.(map[string]interface{})
		seen[directive["tab_id"].(int)] = directive["redirect_url"].(string)
	}
	for tabId, lastURL := range openTabs {
		want := blocksurface.Redirect{
			Reason:      blocksurface.ReasonSessionEnded,
			OriginalURL: lastURL,
		}.Build(blockPage)
		assert.Equal(t, want, seen[tabId])
	}
	assert.NotContains(t, seen, 7)

	// The expiry itself reached the contexts as a state change
	var sawExpired bool
	for _, m := range hub.byKind(constant.WSKindStateChanged) {
		if body, ok := m.payload.(map[string]interface{}); ok && body["event"] == events.TypeSessionExpired {
			sawExpired = true
		}
	}
	assert.True(t, sawExpired)

	// Tabs were forgotten once the directives went out
	assert.Eventually(t, func() bool {
		return len(tabRegistry.All()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
