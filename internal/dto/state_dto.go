package dto

// StateSnapshot is what the popup polls: the session (if any) and the
// decision cache sizes. Countdown rendering stays client-side; EndTime is
// the only timer input the core exposes.
type StateSnapshot struct {
	Session      *SessionResponse `json:"session"`
	Active       bool             `json:"active"`
	AllowedCount int64            `json:"allowed_count"`
	BlockedCount int64            `json:"blocked_count"`
}

// BlockPageState is the block surface's ephemeral query state, persisted so
// a reload mid-redirect can reconcile instead of losing the reason/URL pair.
type BlockPageState struct {
	Reason      string `json:"reason" validate:"required"`
	URL         string `json:"url"`
	OriginalURL string `json:"original_url"`
	Domain      string `json:"domain"`
	Explanation string `json:"explanation"`
}

// DecisionItem is one decision cache entry as listed in the popup.
type DecisionItem struct {
	URLKey     string  `json:"url_key"`
	URL        string  `json:"url"`
	Partition  string  `json:"partition"`
	Reason     string  `json:"reason,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	CreatedAt  int64   `json:"created_at"`
}
