package memory

import (
	"time"

	"ai-chat-be/internal/sessionview"

	"github.com/patrickmn/go-cache"
)

// Entry bundles the per-user view and directory the chat service hands out.
type Entry struct {
	View      *sessionview.View
	Directory *sessionview.Directory
}

// ViewRepository caches one session view per user. Eviction just means the
// view is rebuilt from durable state on the next request, like a page reload.
type ViewRepository struct {
	cache *cache.Cache
}

func NewViewRepository() *ViewRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ViewRepository{
		cache: c,
	}
}

func (r *ViewRepository) Save(userID string, entry *Entry) {
	r.cache.Set(userID, entry, cache.DefaultExpiration)
}

func (r *ViewRepository) Get(userID string) (*Entry, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*Entry), true
	}
	return nil, false
}

func (r *ViewRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
