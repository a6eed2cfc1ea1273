package dto

type ActivityItem struct {
	Id        string                 `json:"id"`
	Type      string                 `json:"type"`
	URL       string                 `json:"url,omitempty"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt int64                  `json:"created_at"`
}

type ActivityListResponse struct {
	Items []ActivityItem `json:"items"`
	Total int64          `json:"total"`
}
