package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shopfront/internal/domain"
)

// RedisStore keeps the cart snapshot in redis. It exists for setups where the
// same session cart should be reachable from more than one client host; the
// single-writer assumption still holds, last Save wins. No TTL is set: the
// cart never expires on its own.
type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	return &RedisStore{client: client, log: log}
}

func (r *RedisStore) Load(ctx context.Context) (domain.Cart, error) {
	raw, err := r.client.Get(ctx, CartKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Empty(), nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("redis get failed: %w", err)
	}

	cart, err := decodeSnapshot(raw)
	if err != nil {
		r.log.Warn("discarding corrupted cart snapshot", zap.Error(err))
		if delErr := r.client.Del(ctx, CartKey).Err(); delErr != nil {
			r.log.Warn("failed to delete corrupted cart snapshot", zap.Error(delErr))
		}
		return domain.Empty(), nil
	}
	return cart, nil
}

func (r *RedisStore) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := encodeSnapshot(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, CartKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
