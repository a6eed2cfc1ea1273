package memory

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// TabRegistry remembers the last main-frame URL seen per browser tab. The
// expiry sweep uses it to force open tabs to the block surface when the
// session ends. Entries age out so closed tabs do not accumulate.
type TabRegistry struct {
	cache *cache.Cache
}

func NewTabRegistry() *TabRegistry {
	return &TabRegistry{
		cache: cache.New(12*time.Hour, 30*time.Minute),
	}
}

func (r *TabRegistry) Upsert(tabId int, url string) {
	r.cache.Set(strconv.Itoa(tabId), url, cache.DefaultExpiration)
}

func (r *TabRegistry) Remove(tabId int) {
	r.cache.Delete(strconv.Itoa(tabId))
}

// All returns tabId -> last URL for every tracked tab.
func (r *TabRegistry) All() map[int]string {
	out := make(map[int]string)
	for key, item := range r.cache.Items() {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		out[id] = item.Object.(string)
	}
	return out
}

func (r *TabRegistry) Clear() {
	r.cache.Flush()
}
