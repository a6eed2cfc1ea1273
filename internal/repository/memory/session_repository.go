package memory

import (
	"context"

	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

const sessionKey = "sessionData"

// SessionRepository keeps the session record in process memory. Used when no
// database is configured and by tests; the contract matches the durable one.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() contract.SessionRepository {
	// The record never expires on its own; lifecycle is owned by the
	// session manager.
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) Get(ctx context.Context) (*entity.Session, error) {
	if x, found := r.cache.Get(sessionKey); found {
		s := x.(entity.Session)
		return &s, nil
	}
	return nil, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	// Stored by value so later mutations of the caller's struct cannot leak
	// into the record.
	r.cache.Set(sessionKey, *session, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	r.cache.Delete(sessionKey)
	return nil
}
