package statestore

import (
	"context"
	"errors"

	"github.com/delegance/storefront-backend/pkg/redis"
)

// RedisKV backs the codec with the shared redis client.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps the provided client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value)
}

func (r *RedisKV) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key)
}
