package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const historyTTL = 24 * time.Hour

// RedisStore keeps transcripts in Redis with a sliding 24h TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func historyKey(sessionID string) string {
	return "history:" + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	v, err := s.client.Get(ctx, historyKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("store: failed to load history: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Append(ctx context.Context, sessionID, userText, reply string) error {
	h, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	h = appendTurn(h, userText, reply)
	if err := s.client.Set(ctx, historyKey(sessionID), h, historyTTL).Err(); err != nil {
		return fmt.Errorf("store: failed to persist history: %w", err)
	}
	return nil
}
