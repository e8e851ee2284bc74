package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	errx "github.com/brb-shop/storefront/internal/core/error"
	"github.com/brb-shop/storefront/internal/storefront/model"
	logx "github.com/brb-shop/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values under "<namespace>:<key>". A positive ttl is
// refreshed on every write.
type RedisStore struct {
	rdb       redis.Cmdable
	namespace string
	ttl       time.Duration
}

func NewRedisStore(rdb redis.Cmdable, namespace string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, namespace: namespace, ttl: ttl}
}

func (r *RedisStore) namespacedKey(key string) string {
	if r.namespace == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", r.namespace, key)
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	k := r.namespacedKey(key)
	v, err := r.rdb.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		logx.Error().Err(err).Str("key", k).Msg("failed to read value from redis")
		return "", false, errx.WrapRedis(err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	k := r.namespacedKey(key)
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.rdb.Set(ctx, k, value, ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", k).Msg("failed to write value to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.KeyValueStore = (*RedisStore)(nil)
