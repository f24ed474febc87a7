package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written to a shared redis instance
const KeyPrefix = "proteinlens:"

const redisPingTimeout = 5 * time.Second

type RedisDatabase struct {
	client *redis.Client
}

// NewRedisDatabase connects using a redis:// URL, e.g. redis://localhost:6379/0
func NewRedisDatabase(connectionString string) (*RedisDatabase, error) {
	options, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w", err)
	}
	return &RedisDatabase{client: redis.NewClient(options)}, nil
}

// CreateDatabase has no schema to create; it checks the server is reachable
func (r *RedisDatabase) CreateDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

func (r *RedisDatabase) DoesDatabaseExist() bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	return r.client.Ping(ctx).Err() == nil
}

func (r *RedisDatabase) Close() error {
	return r.client.Close()
}

func (r *RedisDatabase) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, KeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisDatabase) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, KeyPrefix+key, value, 0).Err()
}

func (r *RedisDatabase) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, KeyPrefix+key).Err()
}
