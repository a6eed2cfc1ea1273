// FILE: pkg/blocksurface/redirect_test.go
package blocksurface

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirectBuildEncodesEverything(t *testing.T) {
	r := Redirect{
		Reason:      ReasonBlocked,
		URL:         "https://example.com/watch?v=1&t=2",
		OriginalURL: "https://example.com/watch?v=1&t=2",
		Domain:      "thesis writing",
		Explanation: "Off-task: video entertainment",
	}

	built := r.Build("chrome-extension://abc/block.html")
	require.True(t, strings.HasPrefix(built, "chrome-extension://abc/block.html?"))

	// Raw separators from the carried URL must not leak into the query string.
	query := built[strings.Index(built, "?")+1:]
	for _, kv := range strings.Split(query, "&") {
		parts := strings.SplitN(kv, "=", 2)
		require.Len(t, parts, 2)
		assert.NotContains(t, parts[1], "?")
		assert.NotContains(t, parts[1], "&")
	}

	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "blocked", q.Get("reason"))
	assert.Equal(t, "https://example.com/watch?v=1&t=2", q.Get("url"))
	assert.Equal(t, "thesis writing", q.Get("domain"))
	assert.Equal(t, "Off-task: video entertainment", q.Get("explanation"))
}

func TestRedirectRoundTripWithContext(t *testing.T) {
	r := Redirect{
		Reason:      ReasonAnalyzing,
		URL:         "https://example.com/a",
		OriginalURL: "https://example.com/a",
		Domain:      "algorithms exam",
		Context: []ContextPair{
			{Question: "What are you working on?", Answer: "graph theory"},
			{Question: "Which sites do you need?", Answer: "wikipedia & arxiv"},
		},
	}

	built := r.Build("chrome-extension://abc/block.html")
	parsed := Parse(built[strings.Index(built, "?")+1:])

	assert.Equal(t, r.Reason, parsed.Reason)
	assert.Equal(t, r.URL, parsed.URL)
	assert.Equal(t, r.OriginalURL, parsed.OriginalURL)
	assert.Equal(t, r.Domain, parsed.Domain)
	assert.Equal(t, r.Context, parsed.Context)
}

func TestParseDefaults(t *testing.T) {
	parsed := Parse("")
	assert.Equal(t, ReasonNoSession, parsed.Reason)

	parsed = Parse("url=https%3A%2F%2Fexample.com")
	assert.Equal(t, ReasonNoSession, parsed.Reason)
	assert.Equal(t, "https://example.com", parsed.URL)
}
