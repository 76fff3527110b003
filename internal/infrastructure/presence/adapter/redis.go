package adapter

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
)

// onlineUsersKey is the Redis set holding the ids of all online users.
// Every server process reads and writes the same set.
const onlineUsersKey = "online_users"

// RedisRegistry satisfies port.Registry using a Redis set.
// SADD/SREM/SISMEMBER are atomic server-side, which gives the concurrent
// multi-process safety the registry contract requires.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry constructs a RedisRegistry from a redis:// URL and verifies
// connectivity before returning.
func NewRedisRegistry(url string) (*RedisRegistry, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("presence: parse redis url: %w", err)
	}
	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("presence: ping: %w", err)
	}
	return &RedisRegistry{client: c}, nil
}

// Ensure interface compliance at compile time
var _ port.Registry = (*RedisRegistry)(nil)

func (r *RedisRegistry) Add(ctx context.Context, userID string) error {
	return r.client.SAdd(ctx, onlineUsersKey, userID).Err()
}

func (r *RedisRegistry) Remove(ctx context.Context, userID string) error {
	return r.client.SRem(ctx, onlineUsersKey, userID).Err()
}

func (r *RedisRegistry) Contains(ctx context.Context, userID string) (bool, error) {
	return r.client.SIsMember(ctx, onlineUsersKey, userID).Result()
}

func (r *RedisRegistry) Members(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, onlineUsersKey).Result()
}

func (r *RedisRegistry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
