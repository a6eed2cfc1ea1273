// FILE: pkg/urlnorm/normalizer.go
package urlnorm

import (
	"net/url"
	"strings"
)

// trackingParams are query parameters that carry no navigation meaning and
// must never influence a cache key.
var trackingParams = []string{
	"utm_source",
	"utm_medium",
	"utm_campaign",
}

// Normalize reduces a raw URL to the canonical form used as a decision cache
// key: tracking parameters removed, fully lowercased, at most one trailing
// slash stripped. It never fails; an unparseable input degrades to its
// lowercased raw form so the caller still gets a deterministic key.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.ToLower(raw)
	}

	q := u.Query()
	for _, p := range trackingParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()

	normalized := strings.ToLower(u.String())
	normalized = strings.TrimSuffix(normalized, "/")

	return normalized
}
