package contract

import (
	"context"

	"focus-shield-be/internal/entity"
)

// SessionRepository persists the single process-wide session record.
type SessionRepository interface {
	// Get returns the current session, or nil when none exists.
	Get(ctx context.Context) (*entity.Session, error)

	// Save replaces the session record atomically: readers observe either
	// the previous record or the new one, never a partial write.
	Save(ctx context.Context, session *entity.Session) error

	// Clear removes the session record. Clearing an already-empty store is
	// not an error.
	Clear(ctx context.Context) error
}
