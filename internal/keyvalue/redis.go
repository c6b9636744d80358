package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

const redisKeyPrefix = "fittracker::"

var _ Store = (*RedisStore)(nil)

// RedisStore persists fittracker values as plain redis strings,
// prefixed so they do not clash with other users of the same instance
type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "keyvalue.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	cmd := s.redisClient.Get(ctx, redisKeyPrefix+key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return cmd.Val(), nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "keyvalue.redis.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	// values live forever, the tracker state has no natural expiry
	cmd := s.redisClient.Set(ctx, redisKeyPrefix+key, value, 0)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
