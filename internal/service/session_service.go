// FILE: internal/service/session_service.go
package service

import (
	"context"
	"time"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/contract"
	"focus-shield-be/internal/repository/memory"
	"focus-shield-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionService interface {
	// Start begins a new enforcement period. Any previous session and all of
	// its cached decisions are discarded before the new record is written.
	Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error)

	// End stops the current session explicitly. Ending when no session exists
	// is a no-op, not an error.
	End(ctx context.Context) error

	// Reset wipes every piece of enforcement state: session, both decision
	// partitions, the in-flight set and the tab registry.
	Reset(ctx context.Context) error

	// Current returns the stored session record, or nil when none exists. The
	// record may already be past its end time; callers wanting enforcement
	// semantics use IsActive.
	Current(ctx context.Context) (*entity.Session, error)

	// IsActive reports whether enforcement applies right now. An expired
	// record is reported inactive even before the sweep tears it down.
	IsActive(ctx context.Context) (bool, *entity.Session, error)

	// ExpireSweep tears down the session if its end time has passed. Returns
	// true when a teardown actually happened.
	ExpireSweep(ctx context.Context) (bool, error)
}

type sessionService struct {
	sessionRepo  contract.SessionRepository
	decisionRepo contract.DecisionRepository
	inflightRepo *memory.InflightRepository
	eventBus     IEventBusService
	logger       logger.ILogger
}

func NewSessionService(
	sessionRepo contract.SessionRepository,
	decisionRepo contract.DecisionRepository,
	inflightRepo *memory.InflightRepository,
	eventBus IEventBusService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		decisionRepo: decisionRepo,
		inflightRepo: inflightRepo,
		eventBus:     eventBus,
		logger:       log,
	}
}

func (s *sessionService) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	now := time.Now()
	endTime := now.Add(time.Duration(req.DurationMs) * time.Millisecond)

	// Decisions from a previous session must never leak into the new one, so
	// the caches are cleared before the record becomes visible.
	if err := s.decisionRepo.Clear(ctx); err != nil {
		s.logger.Error("Session", "Failed to clear decision cache before start", map[string]interface{}{"error": err.Error()})
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to prepare session state")
	}
	s.inflightRepo.Clear()

	session := &entity.Session{
		Id:        uuid.New(),
		State:     constant.SessionStateActive,
		Domain:    req.Domain,
		Context:   toContextPairs(req.Context),
		StartTime: now,
		EndTime:   endTime,
		CreatedAt: now,
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		s.logger.Error("Session", "Failed to persist session", map[string]interface{}{"domain": req.Domain, "error": err.Error()})
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to persist session")
	}

	s.logger.Info("Session", "Session started", map[string]interface{}{
		"domain":      req.Domain,
		"duration_ms": req.DurationMs,
		"end_time":    endTime.UnixMilli(),
	})
	s.eventBus.Publish(ctx, events.NewSessionStarted(session.Domain, session.StartTime.UnixMilli(), session.EndTime.UnixMilli()))

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) End(ctx context.Context) error {
	session, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read session")
	}
	if session == nil {
		return nil
	}
	s.teardown(ctx, session, false)
	return nil
}

func (s *sessionService) Reset(ctx context.Context) error {
	if err := s.sessionRepo.Clear(ctx); err != nil {
		s.logger.Error("Session", "Failed to clear session on reset", map[string]interface{}{"error": err.Error()})
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reset state")
	}
	if err := s.decisionRepo.Clear(ctx); err != nil {
		s.logger.Error("Session", "Failed to clear decisions on reset", map[string]interface{}{"error": err.Error()})
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reset state")
	}
	s.inflightRepo.Clear()

	s.logger.Info("Session", "Full state reset", nil)
	s.eventBus.Publish(ctx, events.NewStateReset())
	return nil
}

func (s *sessionService) Current(ctx context.Context) (*entity.Session, error) {
	return s.sessionRepo.Get(ctx)
}

func (s *sessionService) IsActive(ctx context.Context) (bool, *entity.Session, error) {
	session, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return false, nil, err
	}
	return session.EffectivelyActive(time.Now()), session, nil
}

func (s *sessionService) ExpireSweep(ctx context.Context) (bool, error) {
	session, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	if session == nil || session.State != constant.SessionStateActive {
		return false, nil
	}
	if time.Now().Before(session.EndTime) {
		return false, nil
	}

	s.logger.Info("Session", "Session expired, tearing down", map[string]interface{}{
		"domain":   session.Domain,
		"end_time": session.EndTime.UnixMilli(),
	})
	s.teardown(ctx, session, true)
	return true, nil
}

// teardown clears the session record and every cache tied to it. Failures are
// logged and teardown continues: a half-cleared state with no session record
// is still strictly safer than a lingering active one.
func (s *sessionService) teardown(ctx context.Context, session *entity.Session, expired bool) {
	if err := s.sessionRepo.Clear(ctx); err != nil {
		s.logger.Error("Session", "Failed to clear session record", map[string]interface{}{"error": err.Error()})
	}
	if err := s.decisionRepo.Clear(ctx); err != nil {
		s.logger.Error("Session", "Failed to clear decision cache", map[string]interface{}{"error": err.Error()})
	}
	s.inflightRepo.Clear()

	s.logger.Info("Session", "Session ended", map[string]interface{}{"domain": session.Domain, "expired": expired})
	s.eventBus.Publish(ctx, events.NewSessionEnded(session.Domain, expired))
}

func toContextPairs(in []dto.ContextPairDTO) []entity.ContextPair {
	out := make([]entity.ContextPair, 0, len(in))
	for _, p := range in {
		out = append(out, entity.ContextPair{Question: p.Question, Answer: p.Answer})
	}
	return out
}

func toContextPairDTOs(in []entity.ContextPair) []dto.ContextPairDTO {
	out := make([]dto.ContextPairDTO, 0, len(in))
	for _, p := range in {
		out = append(out, dto.ContextPairDTO{Question: p.Question, Answer: p.Answer})
	}
	return out
}

func toSessionResponse(session *entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		State:     session.State,
		Domain:    session.Domain,
		StartTime: session.StartTime.UnixMilli(),
		EndTime:   session.EndTime.UnixMilli(),
		Context:   toContextPairDTOs(session.Context),
	}
}
