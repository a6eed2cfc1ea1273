package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExemptListMatches(t *testing.T) {
	e := NewExemptList("http://localhost:5001", "chrome-extension://shield/block.html", []string{"intranet.corp"})

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"browser internal page", "chrome://settings", true},
		{"extension page", "chrome-extension://other/popup.html", true},
		{"block surface itself", "chrome-extension://shield/block.html?reason=blocked", true},
		{"classifier host", "http://localhost:5001/classify", true},
		{"extra exempt host", "https://intranet.corp/wiki", true},
		{"about page", "about:blank", true},
		{"local file", "file:///tmp/notes.txt", true},
		{"ordinary site", "https://news.example.com", false},
		{"host containing exempt host as substring of domain", "https://localhost.evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Matches(tt.url))
		})
	}
}
