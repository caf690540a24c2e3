package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portal:session:"

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisStore keeps sessions as JSON values with a Redis TTL.
type RedisStore struct {
	client redisClient
}

// NewRedisStore connects lazily; use Ping to check reachability.
func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, common.ErrNotFound
	}
	if err != nil {
		return Session{}, common.StorageError("get session", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, common.StorageError("decode session", err)
	}
	return s, nil
}

func (r *RedisStore) Put(ctx context.Context, id string, s Session, ttl time.Duration) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisKeyPrefix+id, b, ttl).Err(); err != nil {
		return common.StorageError("put session", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return common.StorageError("delete session", err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	if c, ok := r.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
