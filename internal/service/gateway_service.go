// FILE: internal/service/gateway_service.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/contract"
	"focus-shield-be/internal/repository/memory"
	"focus-shield-be/pkg/events"
	"focus-shield-be/pkg/urlnorm"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Gateway error conditions, mapped to HTTP statuses by the controller.
var (
	ErrNoActiveSession  = errors.New("no active session")
	ErrStaleSession     = errors.New("session changed while classifying")
	ErrAnalysisPending  = errors.New("classification already in progress")
	ErrClassifierFailed = errors.New("classifier unreachable")
)

type IGatewayService interface {
	// Classify resolves a URL against the external classifier, records the
	// outcome in the decision cache and returns it. Concurrent calls for the
	// same URL are collapsed into a single upstream request.
	Classify(ctx context.Context, req *dto.ClassifyRequest) (*dto.ClassifyResponse, error)
}

// pendingCall tracks one outbound classification so that duplicate requests
// can be rejected instead of stampeding the classifier.
type pendingCall struct {
	startedAt time.Time
}

type gatewayService struct {
	sessionService ISessionService
	decisionRepo   contract.DecisionRepository
	inflightRepo   *memory.InflightRepository
	eventBus       IEventBusService
	httpClient     *http.Client
	classifierURL  string
	// resultCache short-circuits repeat lookups right after a classification,
	// keyed by url|domain|sessionStart so results never cross sessions.
	resultCache *cache.Cache
	pending     sync.Map
	logger      logger.ILogger
}

func NewGatewayService(
	sessionService ISessionService,
	decisionRepo contract.DecisionRepository,
	inflightRepo *memory.InflightRepository,
	eventBus IEventBusService,
	classifierBaseURL string,
	classifierTimeout time.Duration,
	resultCacheTTL time.Duration,
	log logger.ILogger,
) IGatewayService {
	return &gatewayService{
		sessionService: sessionService,
		decisionRepo:   decisionRepo,
		inflightRepo:   inflightRepo,
		eventBus:       eventBus,
		httpClient:     &http.Client{Timeout: classifierTimeout},
		classifierURL:  classifierBaseURL + "/classify",
		resultCache:    cache.New(resultCacheTTL, time.Minute),
		logger:         log,
	}
}

func (s *gatewayService) Classify(ctx context.Context, req *dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	active, session, err := s.sessionService.IsActive(ctx)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrNoActiveSession
	}

	urlKey := urlnorm.Normalize(req.URL)
	cacheKey := fmt.Sprintf("%s|%s|%d", urlKey, session.Domain, session.StartTime.UnixMilli())

	if cached, found := s.resultCache.Get(cacheKey); found {
		resp := cached.(dto.ClassifyResponse)
		return &resp, nil
	}

	// One outbound call per URL. A second caller while the first is on the
	// wire gets a pending error and retries from the cache shortly after.
	if _, loaded := s.pending.LoadOrStore(urlKey, pendingCall{startedAt: time.Now()}); loaded {
		return nil, ErrAnalysisPending
	}
	defer s.pending.Delete(urlKey)
	// The interceptor's in-flight claim is released whatever happens next, so
	// the tab never sticks on the analyzing surface.
	defer s.inflightRepo.Remove(urlKey)

	result, err := s.callClassifier(ctx, req, session)
	if err != nil {
		s.logger.Error("Gateway", "Classifier call failed", map[string]interface{}{"url_key": urlKey, "error": err.Error()})
		return nil, ErrClassifierFailed
	}

	// The session may have ended or been replaced while the classifier was
	// thinking. A result for a dead session must not contaminate the cache.
	stillActive, current, err := s.sessionService.IsActive(ctx)
	if err != nil {
		return nil, err
	}
	if !stillActive || current == nil || !current.StartTime.Equal(session.StartTime) {
		s.logger.Warn("Gateway", "Discarding stale classification result", map[string]interface{}{"url_key": urlKey})
		return nil, ErrStaleSession
	}

	partition := constant.PartitionBlocked
	if result.IsProductive {
		partition = constant.PartitionAllowed
	}
	now := time.Now()
	decision := &entity.Decision{
		Id:         uuid.New(),
		URLKey:     urlKey,
		URL:        req.URL,
		Partition:  partition,
		Reason:     result.Explanation,
		Confidence: result.Confidence,
		CreatedAt:  now,
	}
	if err := s.decisionRepo.Record(ctx, decision); err != nil {
		s.logger.Error("Gateway", "Failed to record decision", map[string]interface{}{"url_key": urlKey, "error": err.Error()})
		return nil, err
	}

	s.resultCache.Set(cacheKey, *result, cache.DefaultExpiration)
	s.logger.Info("Gateway", "URL classified", map[string]interface{}{
		"url_key":    urlKey,
		"partition":  partition,
		"confidence": result.Confidence,
	})
	s.eventBus.Publish(ctx, events.NewURLDecision(result.IsProductive, urlKey, result.Explanation, result.Confidence))

	return result, nil
}

func (s *gatewayService) callClassifier(ctx context.Context, req *dto.ClassifyRequest, session *entity.Session) (*dto.ClassifyResponse, error) {
	payload := dto.ClassifyRequest{
		URL:         req.URL,
		Domain:      session.Domain,
		Context:     toContextPairDTOs(session.Context),
		SessionId:   session.StartTime.UnixMilli(),
		Referrer:    req.Referrer,
		DirectVisit: req.DirectVisit,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.classifierURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, fmt.Errorf("classifier returned status %d: %s", httpResp.StatusCode, string(raw))
	}

	var result dto.ClassifyResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	return &result, nil
}
