package cartstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/safari-storefront/internal/cart"
	"github.com/redis/go-redis/v9"
)

// RedisStore shares one cart between devices through Redis. Keys never expire.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// OpenRedis connects using a redis:// URL and checks the connection.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStore(client), nil
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {

		if errors.Is(err, redis.Nil) {
			return nil, cart.ErrSnapshotNotFound
		}

		return nil, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	return data, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, data []byte) error {

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
