package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/contract"
	"focus-shield-be/internal/repository/memory"
	"focus-shield-be/pkg/urlnorm"

	"github.com/stretchr/testify/assert"
)

type gatewayFixture struct {
	svc       IGatewayService
	session   ISessionService
	decisions contract.DecisionRepository
	inflight  *memory.InflightRepository
	bus       *recordingBus
	calls     *int64
}

// newGatewayFixture spins up a stub classifier that answers with the given
// response and counts how many requests actually reached it.
func newGatewayFixture(t *testing.T, respond func(req dto.ClassifyRequest) dto.ClassifyResponse) *gatewayFixture {
	var calls int64
	classifier := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		var req dto.ClassifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(respond(req))
	}))
	t.Cleanup(classifier.Close)

	sessionRepo := memory.NewSessionRepository()
	decisionRepo := memory.NewDecisionRepository()
	inflight := memory.NewInflightRepository()
	bus := &recordingBus{}
	nop := logger.NewNopLogger()

	sessionService := NewSessionService(sessionRepo, decisionRepo, inflight, bus, nop)
	svc := NewGatewayService(sessionService, decisionRepo, inflight, bus, classifier.URL, 5*time.Second, time.Minute, nop)

	return &gatewayFixture{
		svc:       svc,
		session:   sessionService,
		decisions: decisionRepo,
		inflight:  inflight,
		bus:       bus,
		calls:     &calls,
	}
}

func (f *gatewayFixture) startSession(t *testing.T) {
	t.Helper()
	_, err := f.session.Start(context.Background(), &dto.StartSessionRequest{
		Domain:     "prepare the quarterly report",
		DurationMs: 60_000,
		Context:    []dto.ContextPairDTO{{Question: "Deadline?", Answer: "Friday"}},
	})
	assert.NoError(t, err)
}

func TestClassifyRequiresSession(t *testing.T) {
	f := newGatewayFixture(t, func(dto.ClassifyRequest) dto.ClassifyResponse {
		return dto.ClassifyResponse{IsProductive: true}
	})

	_, err := f.svc.Classify(context.Background(), &dto.ClassifyRequest{URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Zero(t, atomic.LoadInt64(f.calls))
}

func TestClassifyProductive(t *testing.T) {
	f := newGatewayFixture(t, func(req dto.ClassifyRequest) dto.ClassifyResponse {
		// The gateway must forward the session's domain and context
		assert.Equal(t, "prepare the quarterly report", req.Domain)
		assert.Len(t, req.Context, 1)
		return dto.ClassifyResponse{IsProductive: true, Explanation: "spreadsheet tooling", Confidence: 0.9}
	})
	f.startSession(t)
	ctx := context.Background()

	url := "https://sheets.example.com/report"
	res, err := f.svc.Classify(ctx, &dto.ClassifyRequest{URL: url})
	assert.NoError(t, err)
	assert.True(t, res.IsProductive)

	d, err := f.decisions.Lookup(ctx, urlnorm.Normalize(url))
	assert.NoError(t, err)
	if assert.NotNil(t, d) {
		assert.Equal(t, constant.PartitionAllowed, d.Partition)
		assert.Equal(t, "spreadsheet tooling", d.Reason)
		assert.Equal(t, 0.9, d.Confidence)
	}

	// Allowed decision event went out after the session-started one
	types := f.bus.types()
	assert.Contains(t, types, "URL_ALLOWED")
}

func TestClassifyUnproductive(t *testing.T) {
	f := newGatewayFixture(t, func(dto.ClassifyRequest) dto.ClassifyResponse {
		return dto.ClassifyResponse{IsProductive: false, Explanation: "social media", Confidence: 0.95}
	})
	f.startSession(t)
	ctx := context.Background()

	url := "https://social.example.com/feed"
	res, err := f.svc.Classify(ctx, &dto.ClassifyRequest{URL: url})
	assert.NoError(t, err)
	assert.False(t, res.IsProductive)

	d, err := f.decisions.Lookup(ctx, urlnorm.Normalize(url))
	assert.NoError(t, err)
	if assert.NotNil(t, d) {
		assert.Equal(t, constant.PartitionBlocked, d.Partition)
	}
	assert.Contains(t, f.bus.types(), "URL_BLOCKED")
}

func TestClassifyReleasesInflight(t *testing.T) {
	f := newGatewayFixture(t, func(dto.ClassifyRequest) dto.ClassifyResponse {
		return dto.ClassifyResponse{IsProductive: true}
	})
	f.startSession(t)
	ctx := context.Background()

	url := "https://tooling.example.com"
	urlKey := urlnorm.Normalize(url)
	f.inflight.Add(urlKey)

	_, err := f.svc.Classify(ctx, &dto.ClassifyRequest{URL: url})
	assert.NoError(t, err)
	assert.False(t, f.inflight.Contains(urlKey))
}

func TestClassifyResultCache(t *testing.T) {
	f := newGatewayFixture(t, func(dto.ClassifyRequest) dto.ClassifyResponse {
		return dto.ClassifyResponse{IsProductive: true, Confidence: 0.7}
	})
	f.startSession(t)
	ctx := context.Background()

	req := &dto.ClassifyRequest{URL: "https://repeat.example.com"}
	_, err := f.svc.Classify(ctx, req)
	assert.NoError(t, err)
	_, err = f.svc.Classify(ctx, req)
	assert.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(f.calls))
}

func TestClassifyStaleSession(t *testing.T) {
	sessionEnder := make(chan ISessionService, 1)
	f := newGatewayFixture(t, func(dto.ClassifyRequest) dto.ClassifyResponse {
		// End the session while the classifier is "thinking"
		svc := <-sessionEnder
		svc.End(context.Background())
		return dto.ClassifyResponse{IsProductive: true}
	})
	f.startSession(t)
	sessionEnder <- f.session

	url := "https://late.example.com"
	_, err := f.svc.Classify(context.Background(), &dto.ClassifyRequest{URL: url})
	assert.ErrorIs(t, err, ErrStaleSession)

	// The stale result must not have been written through
	d, lookupErr := f.decisions.Lookup(context.Background(), urlnorm.Normalize(url))
	assert.NoError(t, lookupErr)
	assert.Nil(t, d)
}

func TestClassifyClassifierDown(t *testing.T) {
	f := newGatewayFixture(t, func(dto.ClassifyRequest) dto.ClassifyResponse {
		return dto.ClassifyResponse{}
	})
	f.startSession(t)

	// Point the gateway at a dead endpoint
	dead := NewGatewayService(f.session, f.decisions, f.inflight, f.bus,
		"http://127.0.0.1:1", 500*time.Millisecond, time.Minute, logger.NewNopLogger())

	url := "https://unreachable.example.com"
	urlKey := urlnorm.Normalize(url)
	f.inflight.Add(urlKey)

	_, err := dead.Classify(context.Background(), &dto.ClassifyRequest{URL: url})
	assert.ErrorIs(t, err, ErrClassifierFailed)

	// Failure still releases the in-flight claim so the tab can retry
	assert.False(t, f.inflight.Contains(urlKey))
}

func TestClassifyClassifierErrorStatus(t *testing.T) {
	f := newGatewayFixture(t, func(dto.ClassifyRequest) dto.ClassifyResponse {
		return dto.ClassifyResponse{}
	})
	f.startSession(t)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)

	broken := NewGatewayService(f.session, f.decisions, f.inflight, f.bus,
		failing.URL, 5*time.Second, time.Minute, logger.NewNopLogger())

	url := "https://flaky.example.com"
	urlKey := urlnorm.Normalize(url)
	f.inflight.Add(urlKey)

	_, err := broken.Classify(context.Background(), &dto.ClassifyRequest{URL: url})
	assert.ErrorIs(t, err, ErrClassifierFailed)

	// A server-side failure releases the claim and records no decision
	assert.False(t, f.inflight.Contains(urlKey))
	d, lookupErr := f.decisions.Lookup(context.Background(), urlKey)
	assert.NoError(t, lookupErr)
	assert.Nil(t, d)
}
