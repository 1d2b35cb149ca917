package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("session")

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore keeps sessions under session:<token> keys that expire after ttl.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *redisStore) Create(ctx context.Context, token string, userID int64) error {
	ctx, span := tracer.Start(ctx, "SessionStore.Create")
	defer span.End()

	if err := s.rdb.Set(ctx, sessionKey(token), userID, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

func (s *redisStore) UserID(ctx context.Context, token string) (int64, error) {
	ctx, span := tracer.Start(ctx, "SessionStore.UserID")
	defer span.End()

	id, err := s.rdb.Get(ctx, sessionKey(token)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to read session from redis: %w", err)
	}
	return id, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "SessionStore.Delete")
	defer span.End()

	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}
