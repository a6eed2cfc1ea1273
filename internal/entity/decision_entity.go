package entity

import (
	"time"

	"github.com/google/uuid"
)

// Decision is one recorded classification outcome, keyed by the normalized
// URL and living in exactly one partition (allowed or blocked).
type Decision struct {
	Id         uuid.UUID
	URLKey     string
	URL        string
	Partition  string
	Reason     string
	Confidence float64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
