package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/splitio/go-toolkit/v5/logging"
)

// RedisConfig struct is used to configure the redis parameters
type RedisConfig struct {
	Host     string
	Port     int
	Database int
	Password string
	Prefix   string
}

// RedisStorage is a redis-backed Storage implementation, for deployments that
// want the stable ID and response cache shared across process restarts.
type RedisStorage struct {
	client *redis.Client
	prefix string
	logger logging.LoggerInterface
}

// NewRedisStorage instantiates a RedisStorage from the supplied config
func NewRedisStorage(cfg *RedisConfig, logger logging.LoggerInterface) *RedisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})
	return &RedisStorage{
		client: client,
		prefix: cfg.Prefix,
		logger: logger,
	}
}

func (r *RedisStorage) withPrefix(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + "." + key
}

// Get retrieves the value stored under key
func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.withPrefix(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		r.logger.Error("Error fetching key from redis: ", key, err.Error())
		return "", err
	}
	return value, nil
}

// Set stores value under key
func (r *RedisStorage) Set(ctx context.Context, key string, value string) error {
	err := r.client.Set(ctx, r.withPrefix(key), value, 0).Err()
	if err != nil {
		r.logger.Error("Error storing key in redis: ", key, err.Error())
	}
	return err
}
