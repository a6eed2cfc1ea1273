package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// InflightRepository tracks URLs currently awaiting a classification result
// so no two outbound requests exist for the same URL. Entries self-expire
// after a few minutes as a safety net against a response that never came
// back, keeping the surface out of a stuck "analyzing" state.
type InflightRepository struct {
	cache *cache.Cache
}

func NewInflightRepository() *InflightRepository {
	return &InflightRepository{
		cache: cache.New(5*time.Minute, 1*time.Minute),
	}
}

// Add marks a URL as in-flight. Returns false if it already was.
func (r *InflightRepository) Add(urlKey string) bool {
	return r.cache.Add(urlKey, struct{}{}, cache.DefaultExpiration) == nil
}

func (r *InflightRepository) Contains(urlKey string) bool {
	_, found := r.cache.Get(urlKey)
	return found
}

func (r *InflightRepository) Remove(urlKey string) {
	r.cache.Delete(urlKey)
}

// Clear drops every pending marker. Called on session end/reset so a new
// session never inherits stale "analyzing" entries.
func (r *InflightRepository) Clear() {
	r.cache.Flush()
}
