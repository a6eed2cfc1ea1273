package service

import (
	"net/url"
	"strings"
)

// schemes the interceptor never touches: browser-internal pages, extension
// pages, local files.
var exemptPrefixes = []string{
	"chrome://",
	"chrome-extension://",
	"opera://",
	"edge://",
	"about:",
	"file://",
}

// ExemptList decides whether a URL bypasses interception entirely: the
// classifier service itself, the block surface, browser-internal schemes,
// and any operator-configured hosts.
type ExemptList struct {
	hosts        []string
	blockPageURL string
}

func NewExemptList(classifierBaseURL, blockPageURL string, extraHosts []string) *ExemptList {
	hosts := make([]string, 0, len(extraHosts)+1)
	if u, err := url.Parse(classifierBaseURL); err == nil && u.Host != "" {
		hosts = append(hosts, strings.ToLower(u.Host))
	}
	for _, h := range extraHosts {
		hosts = append(hosts, strings.ToLower(h))
	}
	return &ExemptList{
		hosts:        hosts,
		blockPageURL: blockPageURL,
	}
}

func (e *ExemptList) Matches(raw string) bool {
	lower := strings.ToLower(raw)

	for _, p := range exemptPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	if e.blockPageURL != "" && strings.HasPrefix(lower, strings.ToLower(e.blockPageURL)) {
		return true
	}

	if u, err := url.Parse(lower); err == nil && u.Host != "" {
		for _, h := range e.hosts {
			if u.Host == h {
				return true
			}
		}
		return false
	}

	// Unparseable input: fall back to substring matching so an exempt host
	// never gets walled off by a parsing quirk.
	for _, h := range e.hosts {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}
