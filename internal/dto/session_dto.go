package dto

type ContextPairDTO struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

type StartSessionRequest struct {
	Domain     string           `json:"domain" validate:"required"`
	DurationMs int64            `json:"duration_ms" validate:"required,gt=0"`
	Context    []ContextPairDTO `json:"context" validate:"dive"`
}

// SessionResponse mirrors the persisted session record. Timestamps are epoch
// milliseconds so extension contexts can derive remaining time client-side.
type SessionResponse struct {
	State     string           `json:"state"`
	Domain    string           `json:"domain"`
	StartTime int64            `json:"start_time"`
	EndTime   int64            `json:"end_time"`
	Context   []ContextPairDTO `json:"context"`
}

type StartSessionResponse struct {
	Session SessionResponse `json:"session"`
}
