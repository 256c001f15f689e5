package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(userID string) string {
	return fmt.Sprintf("chat:active_session:%s", userID)
}

func (s *RedisStore) Load(ctx context.Context, userID string) (string, error) {
	val, err := s.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Save(ctx context.Context, userID, sessionID string) error {
	return s.rdb.Set(ctx, key(userID), sessionID, 0).Err()
}
