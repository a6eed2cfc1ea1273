// FILE: internal/service/state_service.go
package service

import (
	"context"
	"strconv"
	"time"

	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type IStateService interface {
	// Snapshot returns what the popup renders: session record, whether
	// enforcement applies right now, and the decision cache sizes.
	Snapshot(ctx context.Context) (*dto.StateSnapshot, error)

	// Decisions lists the most recent decisions of one partition.
	Decisions(ctx context.Context, partition string, limit int) ([]dto.DecisionItem, error)

	// SaveBlockPageState stores the block surface's query state so a reload
	// can recover it. Keyed per tab.
	SaveBlockPageState(tabId int, state *dto.BlockPageState)

	// BlockPageState returns the stored state for a tab, or nil.
	BlockPageState(tabId int) *dto.BlockPageState
}

type stateService struct {
	sessionService ISessionService
	decisionRepo   contract.DecisionRepository
	// blockStates holds per-tab surface state. Short-lived; a tab that has
	// not reloaded its surface within the TTL starts fresh.
	blockStates *cache.Cache
	logger      logger.ILogger
}

func NewStateService(
	sessionService ISessionService,
	decisionRepo contract.DecisionRepository,
	log logger.ILogger,
) IStateService {
	return &stateService{
		sessionService: sessionService,
		decisionRepo:   decisionRepo,
		blockStates:    cache.New(30*time.Minute, 10*time.Minute),
		logger:         log,
	}
}

func (s *stateService) Snapshot(ctx context.Context) (*dto.StateSnapshot, error) {
	active, session, err := s.sessionService.IsActive(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &dto.StateSnapshot{Active: active}
	if session != nil {
		resp := toSessionResponse(session)
		snapshot.Session = &resp
	}

	allowed, blocked, err := s.decisionRepo.CountByPartition(ctx)
	if err != nil {
		s.logger.Warn("State", "Failed to count decisions", map[string]interface{}{"error": err.Error()})
	} else {
		snapshot.AllowedCount = allowed
		snapshot.BlockedCount = blocked
	}
	return snapshot, nil
}

func (s *stateService) Decisions(ctx context.Context, partition string, limit int) ([]dto.DecisionItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	decisions, err := s.decisionRepo.ListByPartition(ctx, partition, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DecisionItem, 0, len(decisions))
	for _, d := range decisions {
		items = append(items, dto.DecisionItem{
			URLKey:     d.URLKey,
			URL:        d.URL,
			Partition:  d.Partition,
			Reason:     d.Reason,
			Confidence: d.Confidence,
			CreatedAt:  d.CreatedAt.UnixMilli(),
		})
	}
	return items, nil
}

func (s *stateService) SaveBlockPageState(tabId int, state *dto.BlockPageState) {
	s.blockStates.Set(blockStateKey(tabId), *state, cache.DefaultExpiration)
}

func (s *stateService) BlockPageState(tabId int) *dto.BlockPageState {
	v, found := s.blockStates.Get(blockStateKey(tabId))
	if !found {
		return nil
	}
	state := v.(dto.BlockPageState)
	return &state
}

func blockStateKey(tabId int) string {
	return "tab:" + strconv.Itoa(tabId)
}
