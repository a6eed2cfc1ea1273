package memory

import (
	"context"
	"sort"
	"time"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// DecisionRepository is the in-memory decision cache. Both partitions share
// one map keyed by normalized URL; the entry's Partition field says which
// side it is on, which makes partition exclusivity structural.
type DecisionRepository struct {
	cache *cache.Cache
}

func NewDecisionRepository() contract.DecisionRepository {
	return &DecisionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *DecisionRepository) Lookup(ctx context.Context, urlKey string) (*entity.Decision, error) {
	if x, found := r.cache.Get(urlKey); found {
		d := x.(entity.Decision)
		return &d, nil
	}
	return nil, nil
}

// Record mirrors the upsert semantics of the database backend: a re-record
// keeps the original CreatedAt and stamps UpdatedAt, so recency ordering
// follows the latest write on both backends.
func (r *DecisionRepository) Record(ctx context.Context, decision *entity.Decision) error {
	stored := *decision
	if x, found := r.cache.Get(decision.URLKey); found {
		prev := x.(entity.Decision)
		stored.CreatedAt = prev.CreatedAt
		now := time.Now()
		stored.UpdatedAt = &now
	}
	r.cache.Set(stored.URLKey, stored, cache.NoExpiration)
	return nil
}

func (r *DecisionRepository) Clear(ctx context.Context) error {
	r.cache.Flush()
	return nil
}

func (r *DecisionRepository) CountByPartition(ctx context.Context) (int64, int64, error) {
	var allowed, blocked int64
	for _, item := range r.cache.Items() {
		d := item.Object.(entity.Decision)
		if d.Partition == constant.PartitionAllowed {
			allowed++
		} else {
			blocked++
		}
	}
	return allowed, blocked, nil
}

func (r *DecisionRepository) ListByPartition(ctx context.Context, partition string, limit int) ([]*entity.Decision, error) {
	var out []*entity.Decision
	for _, item := range r.cache.Items() {
		d := item.Object.(entity.Decision)
		if d.Partition == partition {
			copied := d
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return lastTouched(out[i]).After(lastTouched(out[j]))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func lastTouched(d *entity.Decision) time.Time {
	if d.UpdatedAt != nil {
		return *d.UpdatedAt
	}
	return d.CreatedAt
}
