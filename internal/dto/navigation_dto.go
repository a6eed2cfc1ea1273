package dto

type NavigationEventRequest struct {
	TabId   int    `json:"tab_id" validate:"gte=0"`
	URL     string `json:"url" validate:"required"`
	FrameId int    `json:"frame_id" validate:"gte=0"`
}

// NavigationDecisionResponse tells the background script what to do with
// the intercepted navigation: let it proceed, redirect the tab, or nothing
// (a decision for this URL is already pending or recently dispatched).
type NavigationDecisionResponse struct {
	Action      string `json:"action"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Reason      string `json:"reason,omitempty"`
}
