package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"adra/pkg/types"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "adra:session:"

// RedisStore keeps sessions in redis with a TTL matching the session
// expiry, so horizontally scaled instances share the same session state.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, session types.AdminSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := s.client.Set(ctx, redisKeyPrefix+session.Token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *RedisStore) Find(ctx context.Context, token string) (types.AdminSession, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return types.AdminSession{}, types.ErrSessionNotFound
		}
		return types.AdminSession{}, fmt.Errorf("failed to fetch session: %w", err)
	}

	var session types.AdminSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return types.AdminSession{}, fmt.Errorf("failed to decode session: %w", err)
	}
	session.Token = token

	return session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
