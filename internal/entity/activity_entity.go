package entity

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one row of the enforcement trail: session transitions and
// classification outcomes, persisted for the popup's recent-activity panel.
type Activity struct {
	Id        uuid.UUID
	Type      string
	URLKey    string
	Message   string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
