package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContextPair is one question/answer gathered before the session started.
// The sequence is immutable once the session is active.
type ContextPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is the single process-wide enforcement period. At most one row
// exists at any time.
type Session struct {
	Id        uuid.UUID
	State     string
	Domain    string
	Context   []ContextPair
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

// EffectivelyActive reports whether enforcement applies at the given
// instant. Readers must use this rather than the stored state so an expired
// record is treated as inactive even before the sweep rewrites it.
func (s *Session) EffectivelyActive(now time.Time) bool {
	if s == nil {
		return false
	}
	return s.State == "active" && now.Before(s.EndTime)
}
