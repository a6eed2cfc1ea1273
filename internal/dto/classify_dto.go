package dto

type ClassifyRequest struct {
	URL         string           `json:"url" validate:"required"`
	Domain      string           `json:"domain"`
	Context     []ContextPairDTO `json:"context"`
	SessionId   int64            `json:"session_id"`
	Referrer    string           `json:"referrer"`
	DirectVisit bool             `json:"direct_visit"`
}

type ClassifyResponse struct {
	IsProductive bool    `json:"isProductive"`
	Explanation  string  `json:"explanation"`
	Confidence   float64 `json:"confidence,omitempty"`
}
