package selection

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps selections in process memory. Used for single-node runs
// and tests; selections do not survive a restart.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Load(ctx context.Context, userID string) (string, error) {
	if x, found := s.cache.Get(userID); found {
		return x.(string), nil
	}
	return "", nil
}

func (s *MemoryStore) Save(ctx context.Context, userID, sessionID string) error {
	s.cache.Set(userID, sessionID, cache.NoExpiration)
	return nil
}
