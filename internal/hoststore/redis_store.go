package hoststore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient is the narrow slice of *redis.Client RedisStore depends
// on, so tests can substitute a hand-written fake without a mocking
// library tied to a different client major version.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore persists blobs in Redis, keyed as given. Unlike the
// teacher's cache (which is a best-effort cache the caller must be
// able to miss), a write here is never silently dropped: Save surfaces
// the underlying error so a host can decide whether to retry or fall
// back to MemoryStore.
type RedisStore struct {
	client redisClient
}

// NewRedisStore wraps an existing *redis.Client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	blob, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, blob []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	if err := r.client.Set(ctx, key, blob, 0).Err(); err != nil {
		return "", err
	}
	return newWriteID(), nil
}
