// Package throttle limits how often an action may happen per key.
package throttle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetCooldownPrefix namespaces the password reset cooldown keys.
const ResetCooldownPrefix = "pwdreset:cooldown:"

// Cooldown admits at most one action per key and window.
type Cooldown interface {
	Allow(ctx context.Context, key string) (bool, error)
	// Release gives back a slot whose action failed.
	Release(ctx context.Context, key string) error
}

// RedisCooldown stores one key per admitted action with the window as TTL.
type RedisCooldown struct {
	client redis.Cmdable
	prefix string
	window time.Duration
}

// NewRedisCooldown creates a cooldown backed by client.
func NewRedisCooldown(client redis.Cmdable, prefix string, window time.Duration) *RedisCooldown {
	return &RedisCooldown{client: client, prefix: prefix, window: window}
}

// Allow reports whether the action for key may run now. The first caller in
// a window wins; later callers get false until the key expires.
func (c *RedisCooldown) Allow(ctx context.Context, key string) (bool, error) {
	if c.window <= 0 {
		return true, nil
	}
	ok, err := c.client.SetNX(ctx, c.prefix+strings.ToLower(key), 1, c.window).Result()
	if err != nil {
		return false, fmt.Errorf("cooldown %s: %w", key, err)
	}
	return ok, nil
}

// Release clears the window for key so the next caller is admitted.
func (c *RedisCooldown) Release(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+strings.ToLower(key)).Err(); err != nil {
		return fmt.Errorf("cooldown release %s: %w", key, err)
	}
	return nil
}

// Disabled never throttles. It is used when Redis is not configured.
type Disabled struct{}

func (Disabled) Allow(context.Context, string) (bool, error) {
	return true, nil
}

func (Disabled) Release(context.Context, string) error {
	return nil
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
