package session

import (
	"context"
	"errors"
)

// RedisClient is the narrow interface RedisStorage needs. It is
// compatible with github.com/redis/go-redis/v9 without importing it;
// wrap a *redis.Client to satisfy it.
type RedisClient interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Close() error
}

// ErrRedisNil is the sentinel a RedisClient should return for a missing
// key. It should match redis.Nil from go-redis.
var ErrRedisNil = errors.New("redis: nil")

// RedisStorage is a Redis-backed Storage, for running several
// storefront processes against one shared identity key.
type RedisStorage struct {
	client RedisClient
	key    string
}

// RedisStorageOption configures RedisStorage behavior.
type RedisStorageOption func(*RedisStorage)

// WithRedisKey sets the key the identity record is stored under.
// Default: "shopkit:user".
func WithRedisKey(key string) RedisStorageOption {
	return func(r *RedisStorage) {
		r.key = key
	}
}

// NewRedisStorage creates a Redis-backed storage over the given client.
func NewRedisStorage(client RedisClient, opts ...RedisStorageOption) *RedisStorage {
	r := &RedisStorage{
		client: client,
		key:    "shopkit:user",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Save overwrites the identity record.
func (r *RedisStorage) Save(ctx context.Context, data []byte) error {
	return r.client.Set(ctx, r.key, data)
}

// Load retrieves the identity record. A missing key maps to (nil, nil).
func (r *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key)
	if errors.Is(err, ErrRedisNil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes the identity record.
func (r *RedisStorage) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key)
}

// Close closes the underlying client.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
