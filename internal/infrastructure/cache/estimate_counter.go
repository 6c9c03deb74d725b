// Package cache holds the Redis backed estimate counter.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"greenpro_billing/internal/usecase/interfaces"
)

// EstimateCountKey is the counter's key, shared by every instance of the service.
const EstimateCountKey = "greenpro_estimate_count"

type EstimateCounter struct {
	client *redis.Client
	key    string
}

var _ interfaces.IEstimateCounter = (*EstimateCounter)(nil)

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewEstimateCounter(client *redis.Client) *EstimateCounter {
	return &EstimateCounter{client: client, key: EstimateCountKey}
}

func (c *EstimateCounter) Increment(ctx context.Context) (int64, error) {
	n, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", c.key, err)
	}
	return n, nil
}

func (c *EstimateCounter) Current(ctx context.Context) (int64, error) {
	n, err := c.client.Get(ctx, c.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", c.key, err)
	}
	return n, nil
}

func (c *EstimateCounter) Close() error {
	return c.client.Close()
}
