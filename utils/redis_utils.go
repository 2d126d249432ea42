package utils

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSnapshotStore caches serialized progress snapshots per user. The
// progress percentage is allowed to be a few requests stale, so reads fall
// back to live aggregation on any miss or Redis failure.
type RedisSnapshotStore struct {
	inner     *redis.Client
	keyParser RedisKeyParser
	ttl       time.Duration
}

const (
	progressKeyPrefix  = "progress"
	defaultSnapshotTTL = 60 * time.Second
)

var ctx = context.Background()

func GetRedisSnapshotStore() (*RedisSnapshotStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &RedisSnapshotStore{
		inner:     redisClient,
		keyParser: RedisKeyParser{delimiter: "__"},
		ttl:       defaultSnapshotTTL,
	}, nil
}

type RedisKeyParser struct {
	delimiter string
}

func (r RedisKeyParser) ValidateId(id string) bool {
	return !strings.Contains(id, r.delimiter)
}

func (r RedisKeyParser) EncodeProgressKey(userId string) (string, error) {
	if !r.ValidateId(userId) {
		return "", fmt.Errorf("invalid userId: %s", userId)
	}
	return fmt.Sprintf("%s%s%s", progressKeyPrefix, r.delimiter, userId), nil
}

func (r RedisKeyParser) DecodeProgressKey(key string) (string, error) {
	splits := strings.Split(key, r.delimiter)
	if len(splits) != 2 || splits[0] != progressKeyPrefix {
		return "", fmt.Errorf("invalid key: %s", key)
	}
	return splits[1], nil
}

// GetProgressSnapshot returns the cached snapshot bytes for the user, or
// (nil, nil) on cache miss.
func (r *RedisSnapshotStore) GetProgressSnapshot(userId string) ([]byte, error) {
	key, err := r.keyParser.EncodeProgressKey(userId)
	if err != nil {
		return nil, err
	}
	res, err := r.inner.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return res, err
}

// SetProgressSnapshot stores the snapshot bytes for the user with the store
// TTL, overwriting any previous snapshot.
func (r *RedisSnapshotStore) SetProgressSnapshot(userId string, snapshot []byte) error {
	key, err := r.keyParser.EncodeProgressKey(userId)
	if err != nil {
		return err
	}
	return r.inner.Set(ctx, key, snapshot, r.ttl).Err()
}

// InvalidateProgressSnapshot drops the cached snapshot, called after any
// mutation that changes the user's counts.
func (r *RedisSnapshotStore) InvalidateProgressSnapshot(userId string) error {
	key, err := r.keyParser.EncodeProgressKey(userId)
	if err != nil {
		return err
	}
	return r.inner.Del(ctx, key).Err()
}
