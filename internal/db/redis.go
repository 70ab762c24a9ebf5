package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates a client and pings the server.
func ConnectRedis(ctx context.Context, addr, password string, database int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// RedisSlotStore keeps each slot under its own Redis key.
type RedisSlotStore struct {
	Client *redis.Client
	Prefix string
}

// Get reads one slot.
func (r *RedisSlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.Client.Get(ctx, prefixed(r.Prefix, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes all slots inside MULTI/EXEC.
func (r *RedisSlotStore) Put(ctx context.Context, slots ...Slot) error {
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, s := range slots {
			pipe.Set(ctx, prefixed(r.Prefix, s.Key), s.Data, 0)
		}
		return nil
	})
	return err
}

// Close closes the client.
func (r *RedisSlotStore) Close(ctx context.Context) error {
	return r.Client.Close()
}
