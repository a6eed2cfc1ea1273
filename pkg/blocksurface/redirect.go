// FILE: pkg/blocksurface/redirect.go
package blocksurface

import (
	"encoding/json"
	"net/url"
)

// Reason identifies which state the block surface should render.
type Reason string

const (
	ReasonNoSession    Reason = "no-session"
	ReasonBlocked      Reason = "blocked"
	ReasonAnalyzing    Reason = "analyzing"
	ReasonError        Reason = "error"
	ReasonSessionEnded Reason = "session-ended"
)

// ContextPair is one question/answer gathered before the session started.
type ContextPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Redirect describes a navigation the extension must perform towards the
// block surface. Everything the surface needs travels in the query string,
// so every value is percent-encoded and the context is JSON-serialized first.
type Redirect struct {
	Reason      Reason
	URL         string
	OriginalURL string
	Domain      string
	Explanation string
	Context     []ContextPair
}

// Build renders the redirect as the block surface URL. basePage is the
// surface's own page URL (e.g. the extension's block.html).
func (r Redirect) Build(basePage string) string {
	q := url.Values{}
	q.Set("reason", string(r.Reason))
	if r.URL != "" {
		q.Set("url", r.URL)
	}
	if r.OriginalURL != "" {
		q.Set("original_url", r.OriginalURL)
	}
	if r.Domain != "" {
		q.Set("domain", r.Domain)
	}
	if r.Explanation != "" {
		q.Set("explanation", r.Explanation)
	}
	if r.Context != nil {
		// Context is JSON first, then percent-encoded by url.Values.
		raw, err := json.Marshal(r.Context)
		if err == nil {
			q.Set("context", string(raw))
		}
	}
	return basePage + "?" + q.Encode()
}

// Parse reconstructs a Redirect from a block surface URL's query string.
// Used by the block-page state reconciliation endpoint; unknown or missing
// fields stay zero rather than failing.
func Parse(rawQuery string) Redirect {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Redirect{Reason: ReasonError}
	}

	r := Redirect{
		Reason:      Reason(q.Get("reason")),
		URL:         q.Get("url"),
		OriginalURL: q.Get("original_url"),
		Domain:      q.Get("domain"),
		Explanation: q.Get("explanation"),
	}
	if r.Reason == "" {
		r.Reason = ReasonNoSession
	}
	if raw := q.Get("context"); raw != "" {
		var pairs []ContextPair
		if err := json.Unmarshal([]byte(raw), &pairs); err == nil {
			r.Context = pairs
		}
	}
	return r
}
