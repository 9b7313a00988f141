package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker backs the dashboard's in-flight guards (one submit per form) and
// its once-per-session markers (trash cleanup).
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type RedisLock struct {
	client *redis.Client
	prefix string
}

func NewRedisLock(redisAddr string) (*RedisLock, error) {
	const op = "lock.NewRedisLock"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLock{client: client, prefix: "treedash"}, nil
}

func (r *RedisLock) key(key string) string {
	return fmt.Sprintf("%s:lock:%s", r.prefix, key)
}

func (r *RedisLock) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	const op = "lock.RedisLock.Lock"

	result, err := r.client.SetNX(ctx, r.key(key), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (r *RedisLock) Unlock(ctx context.Context, key string) error {
	const op = "lock.RedisLock.Unlock"

	if _, err := r.client.Del(ctx, r.key(key)).Result(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisLock) Close() error {
	return r.client.Close()
}

// SubmitKey guards one event form of one admin; id is empty for a new event.
func SubmitKey(subject, id string) string {
	if id == "" {
		id = "new"
	}
	return fmt.Sprintf("event-submit:%s:%s", subject, id)
}

// ToggleKey guards the availability write of one date, across admins.
func ToggleKey(date string) string {
	return fmt.Sprintf("day-toggle:%s", date)
}

// CleanupKey marks that an admin session already ran the trash cleanup.
func CleanupKey(subject string) string {
	return fmt.Sprintf("trash-cleanup:%s", subject)
}
