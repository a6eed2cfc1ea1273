// FILE: pkg/urlnorm/normalizer_test.go
package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain url unchanged",
			raw:  "https://example.com/docs",
			want: "https://example.com/docs",
		},
		{
			name: "trailing slash stripped",
			raw:  "https://example.com/docs/",
			want: "https://example.com/docs",
		},
		{
			name: "uppercase lowered",
			raw:  "https://Example.COM/Docs",
			want: "https://example.com/docs",
		},
		{
			name: "tracking params removed",
			raw:  "https://example.com/docs?utm_source=mail&utm_medium=email&utm_campaign=x",
			want: "https://example.com/docs",
		},
		{
			name: "non tracking params survive",
			raw:  "https://example.com/search?q=go&utm_source=mail",
			want: "https://example.com/search?q=go",
		},
		{
			name: "bare host with slash",
			raw:  "https://example.com/",
			want: "https://example.com",
		},
		{
			name: "unparseable falls back to lowercase",
			raw:  "not a url AT ALL",
			want: "not a url at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

// URLs differing only by tracked params, case, or a single trailing slash
// must collapse to the same key.
func TestNormalizeEquivalence(t *testing.T) {
	groups := [][]string{
		{
			"https://example.com/a",
			"https://example.com/a/",
			"https://EXAMPLE.com/A",
			"https://example.com/a?utm_source=newsletter",
			"https://example.com/a/?utm_campaign=spring&utm_medium=cpc",
		},
		{
			"http://news.site.org/today?id=7",
			"http://News.Site.org/today?id=7&utm_source=x",
		},
	}

	for _, group := range groups {
		key := Normalize(group[0])
		for _, raw := range group[1:] {
			assert.Equal(t, key, Normalize(raw), "raw=%s", raw)
		}
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raw := "https://example.com/path?b=2&a=1&utm_medium=social"
	assert.Equal(t, Normalize(raw), Normalize(raw))
}
