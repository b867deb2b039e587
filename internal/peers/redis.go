package peers

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "room_peers:"

// RedisRegistry shares peer lists across server instances via a Redis
// set per room. Use it whenever the service runs with more than one
// replica; MemoryRegistry fragments under horizontal scaling.
type RedisRegistry struct {
	rdb *redis.Client
}

func NewRedisRegistry(addr string) (*RedisRegistry, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisRegistry{rdb: rdb}, nil
}

func (r *RedisRegistry) Peers(ctx context.Context, roomID string) ([]string, error) {
	peers, err := r.rdb.SMembers(ctx, keyPrefix+roomID).Result()
	if err != nil {
		return nil, err
	}
	return peers, nil
}

func (r *RedisRegistry) Add(ctx context.Context, roomID, peerID string) (bool, error) {
	added, err := r.rdb.SAdd(ctx, keyPrefix+roomID, peerID).Result()
	if err != nil {
		return false, err
	}
	return added > 0, nil
}

func (r *RedisRegistry) Remove(ctx context.Context, roomID, peerID string) (bool, error) {
	removed, err := r.rdb.SRem(ctx, keyPrefix+roomID, peerID).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (r *RedisRegistry) Close() error {
	return r.rdb.Close()
}
