package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/contract"
	"focus-shield-be/internal/repository/memory"
	"focus-shield-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// recordingBus captures published events in place of the real bus.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.EventType())
	}
	return out
}

func newSessionFixture() (ISessionService, *recordingBus, *memory.InflightRepository, *sessionFixtureRepos) {
	repos := &sessionFixtureRepos{
		sessions:  memory.NewSessionRepository(),
		decisions: memory.NewDecisionRepository(),
	}
	inflight := memory.NewInflightRepository()
	bus := &recordingBus{}
	svc := NewSessionService(repos.sessions, repos.decisions, inflight, bus, logger.NewNopLogger())
	return svc, bus, inflight, repos
}

type sessionFixtureRepos struct {
	sessions  contract.SessionRepository
	decisions contract.DecisionRepository
}

func TestSessionStart(t *testing.T) {
	svc, bus, _, repos := newSessionFixture()
	ctx := context.Background()

	// A decision left over from a previous session
	err := repos.decisions.Record(ctx, &entity.Decision{
		Id:        uuid.New(),
		URLKey:    "https://old.example.com",
		Partition: constant.PartitionAllowed,
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)

	res, err := svc.Start(ctx, &dto.StartSessionRequest{
		Domain:     "write thesis chapter",
		DurationMs: 60_000,
		Context:    []dto.ContextPairDTO{{Question: "Goal?", Answer: "Finish chapter 3"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, constant.SessionStateActive, res.State)
	assert.Equal(t, "write thesis chapter", res.Domain)
	assert.Equal(t, res.StartTime+60_000, res.EndTime)
	assert.Len(t, res.Context, 1)

	// Leftover decision must be gone
	d, err := repos.decisions.Lookup(ctx, "https://old.example.com")
	assert.NoError(t, err)
	assert.Nil(t, d)

	active, session, err := svc.IsActive(ctx)
	assert.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, "write thesis chapter", session.Domain)

	assert.Equal(t, []string{events.TypeSessionStarted}, bus.types())
}

func TestSessionStartReplacesExisting(t *testing.T) {
	svc, _, _, _ := newSessionFixture()
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSessionRequest{Domain: "first", DurationMs: 60_000})
	assert.NoError(t, err)
	_, err = svc.Start(ctx, &dto.StartSessionRequest{Domain: "second", DurationMs: 60_000})
	assert.NoError(t, err)

	session, err := svc.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "second", session.Domain)
}

func TestSessionEnd(t *testing.T) {
	svc, bus, inflight, repos := newSessionFixture()
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSessionRequest{Domain: "focus", DurationMs: 60_000})
	assert.NoError(t, err)

	// Populate state the teardown must clear
	inflight.Add("https://pending.example.com")
	err = repos.decisions.Record(ctx, &entity.Decision{
		Id:        uuid.New(),
		URLKey:    "https://allowed.example.com",
		Partition: constant.PartitionAllowed,
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.End(ctx))

	session, err := svc.Current(ctx)
	assert.NoError(t, err)
	assert.Nil(t, session)

	assert.False(t, inflight.Contains("https://pending.example.com"))
	d, err := repos.decisions.Lookup(ctx, "https://allowed.example.com")
	assert.NoError(t, err)
	assert.Nil(t, d)

	assert.Equal(t, []string{events.TypeSessionStarted, events.TypeSessionEnded}, bus.types())
}

func TestSessionEndWithoutSession(t *testing.T) {
	svc, bus, _, _ := newSessionFixture()

	assert.NoError(t, svc.End(context.Background()))
	assert.Empty(t, bus.types())
}

func TestSessionExpiry(t *testing.T) {
	svc, bus, _, _ := newSessionFixture()
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSessionRequest{Domain: "short", DurationMs: 30})
	assert.NoError(t, err)

	// Not expired yet: sweep is a no-op
	swept, err := svc.ExpireSweep(ctx)
	assert.NoError(t, err)
	assert.False(t, swept)

	time.Sleep(50 * time.Millisecond)

	// Lazy expiry: reported inactive before any sweep ran
	active, _, err := svc.IsActive(ctx)
	assert.NoError(t, err)
	assert.False(t, active)

	swept, err = svc.ExpireSweep(ctx)
	assert.NoError(t, err)
	assert.True(t, swept)

	session, err := svc.Current(ctx)
	assert.NoError(t, err)
	assert.Nil(t, session)

	assert.Equal(t, []string{events.TypeSessionStarted, events.TypeSessionExpired}, bus.types())

	// Second sweep finds nothing
	swept, err = svc.ExpireSweep(ctx)
	assert.NoError(t, err)
	assert.False(t, swept)
}

func TestSessionReset(t *testing.T) {
	svc, bus, inflight, repos := newSessionFixture()
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSessionRequest{Domain: "focus", DurationMs: 60_000})
	assert.NoError(t, err)
	inflight.Add("https://pending.example.com")
	err = repos.decisions.Record(ctx, &entity.Decision{
		Id:        uuid.New(),
		URLKey:    "https://blocked.example.com",
		Partition: constant.PartitionBlocked,
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Reset(ctx))

	session, err := svc.Current(ctx)
	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.False(t, inflight.Contains("https://pending.example.com"))

	allowed, blocked, err := repos.decisions.CountByPartition(ctx)
	assert.NoError(t, err)
	assert.Zero(t, allowed)
	assert.Zero(t, blocked)

	assert.Equal(t, []string{events.TypeSessionStarted, events.TypeStateReset}, bus.types())
}
