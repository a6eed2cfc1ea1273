// FILE: internal/service/interceptor_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/contract"
	"focus-shield-be/internal/repository/memory"
	"focus-shield-be/pkg/blocksurface"
	"focus-shield-be/pkg/urlnorm"

	"github.com/patrickmn/go-cache"
)

type IInterceptorService interface {
	// Decide resolves a main-frame navigation event into an action. It never
	// returns an error: when the state cannot be read, the answer is a
	// redirect towards the error surface rather than an uncontrolled allow.
	Decide(ctx context.Context, req *dto.NavigationEventRequest) dto.NavigationDecisionResponse
}

type interceptorService struct {
	sessionService ISessionService
	decisionRepo   contract.DecisionRepository
	inflightRepo   *memory.InflightRepository
	tabRegistry    *memory.TabRegistry
	exemptList     *ExemptList
	blockPageURL   string
	// recentRedirects suppresses repeat redirects for the same tab, URL and
	// reason inside a short window, so a surface that re-navigates does not
	// ping-pong with the interceptor.
	recentRedirects *cache.Cache
	logger          logger.ILogger
}

func NewInterceptorService(
	sessionService ISessionService,
	decisionRepo contract.DecisionRepository,
	inflightRepo *memory.InflightRepository,
	tabRegistry *memory.TabRegistry,
	exemptList *ExemptList,
	blockPageURL string,
	redirectCooldown time.Duration,
	log logger.ILogger,
) IInterceptorService {
	return &interceptorService{
		sessionService:  sessionService,
		decisionRepo:    decisionRepo,
		inflightRepo:    inflightRepo,
		tabRegistry:     tabRegistry,
		exemptList:      exemptList,
		blockPageURL:    blockPageURL,
		recentRedirects: cache.New(redirectCooldown, time.Minute),
		logger:          log,
	}
}

func (s *interceptorService) Decide(ctx context.Context, req *dto.NavigationEventRequest) dto.NavigationDecisionResponse {
	// Sub-frame loads are never intercepted; only the tab's main document.
	if req.FrameId != 0 {
		return dto.NavigationDecisionResponse{Action: constant.ActionNone}
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		return dto.NavigationDecisionResponse{Action: constant.ActionNone}
	}
	if s.exemptList.Matches(req.URL) {
		return dto.NavigationDecisionResponse{Action: constant.ActionAllow}
	}

	s.tabRegistry.Upsert(req.TabId, req.URL)

	active, session, err := s.sessionService.IsActive(ctx)
	if err != nil {
		s.logger.Error("Interceptor", "Failed to read session state", map[string]interface{}{"error": err.Error()})
		return s.redirect(req, blocksurface.Redirect{
			Reason:      blocksurface.ReasonError,
			OriginalURL: req.URL,
		}, string(blocksurface.ReasonError))
	}
	if !active {
		return s.redirect(req, blocksurface.Redirect{
			Reason:      blocksurface.ReasonNoSession,
			OriginalURL: req.URL,
		}, string(blocksurface.ReasonNoSession))
	}

	urlKey := urlnorm.Normalize(req.URL)

	decision, err := s.decisionRepo.Lookup(ctx, urlKey)
	if err != nil {
		s.logger.Error("Interceptor", "Decision lookup failed", map[string]interface{}{"url_key": urlKey, "error": err.Error()})
		return s.redirect(req, blocksurface.Redirect{
			Reason:      blocksurface.ReasonError,
			OriginalURL: req.URL,
		}, string(blocksurface.ReasonError))
	}
	if decision != nil {
		if decision.Partition == constant.PartitionAllowed {
			return dto.NavigationDecisionResponse{Action: constant.ActionAllow}
		}
		return s.redirect(req, blockedRedirect(session, decision, req.URL), string(blocksurface.ReasonBlocked))
	}

	// Cache miss. The first event for this URL claims the in-flight slot and
	// sends the tab to the analyzing surface, which fires the classification
	// request. Later events for the same URL do nothing until a result lands.
	if s.inflightRepo.Add(urlKey) {
		s.logger.Debug("Interceptor", "URL claimed for analysis", map[string]interface{}{"tab_id": req.TabId, "url_key": urlKey})
		return s.redirect(req, blocksurface.Redirect{
			Reason:      blocksurface.ReasonAnalyzing,
			URL:         req.URL,
			OriginalURL: req.URL,
			Domain:      session.Domain,
			Context:     toSurfaceContext(session.Context),
		}, string(blocksurface.ReasonAnalyzing))
	}
	return dto.NavigationDecisionResponse{Action: constant.ActionNone}
}

// redirect builds the response, applying the per-tab cooldown so the same
// redirect is not dispatched twice in quick succession.
func (s *interceptorService) redirect(req *dto.NavigationEventRequest, r blocksurface.Redirect, reason string) dto.NavigationDecisionResponse {
	cooldownKey := fmt.Sprintf("%d|%s|%s", req.TabId, urlnorm.Normalize(req.URL), reason)
	if err := s.recentRedirects.Add(cooldownKey, struct{}{}, cache.DefaultExpiration); err != nil {
		return dto.NavigationDecisionResponse{Action: constant.ActionNone}
	}
	return dto.NavigationDecisionResponse{
		Action:      constant.ActionRedirect,
		RedirectURL: r.Build(s.blockPageURL),
		Reason:      reason,
	}
}

func blockedRedirect(session *entity.Session, decision *entity.Decision, originalURL string) blocksurface.Redirect {
	return blocksurface.Redirect{
		Reason:      blocksurface.ReasonBlocked,
		URL:         decision.URL,
		OriginalURL: originalURL,
		Domain:      session.Domain,
		Explanation: decision.Reason,
		Context:     toSurfaceContext(session.Context),
	}
}

func toSurfaceContext(in []entity.ContextPair) []blocksurface.ContextPair {
	if len(in) == 0 {
		return nil
	}
	out := make([]blocksurface.ContextPair, 0, len(in))
	for _, p := range in {
		out = append(out, blocksurface.ContextPair{Question: p.Question, Answer: p.Answer})
	}
	return out
}
