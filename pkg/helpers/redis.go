package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions is the subset of redis.Options the services configure.
type RedisOptions struct {
	Addr       string
	Password   string
	DB         int
	ClientName string // shows up in CLIENT LIST
}

// NewRedisClient builds a client with short network timeouts so a slow
// Redis degrades sessions and rate limits instead of stalling requests.
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		ClientName:   opts.ClientName,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// RedisSetJSON stores value as JSON under key. A zero ttl keeps the key
// forever.
func RedisSetJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// RedisGetJSON decodes the JSON value under key. A missing key yields
// (nil, nil).
func RedisGetJSON[T any](ctx context.Context, rdb *redis.Client, key string) (*T, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var dest T
	if err := json.Unmarshal(res, &dest); err != nil {
		return nil, err
	}
	return &dest, nil
}

func RedisDel(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
