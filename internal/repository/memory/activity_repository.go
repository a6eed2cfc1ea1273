package memory

import (
	"context"
	"sync"

	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/repository/contract"
)

const maxActivityEntries = 500

// ActivityRepository keeps a bounded in-memory enforcement trail for the
// no-database mode. Oldest entries are dropped past the cap.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries []*entity.Activity
}

func NewActivityRepository() contract.ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *activity
	r.entries = append(r.entries, &copied)
	if len(r.entries) > maxActivityEntries {
		r.entries = r.entries[len(r.entries)-maxActivityEntries:]
	}
	return nil
}

func (r *ActivityRepository) FindRecent(ctx context.Context, limit, offset int) ([]*entity.Activity, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.entries))

	// Newest first.
	reversed := make([]*entity.Activity, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		reversed = append(reversed, r.entries[i])
	}

	if offset >= len(reversed) {
		return []*entity.Activity{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(reversed) {
		end = len(reversed)
	}
	return reversed[offset:end], total, nil
}
