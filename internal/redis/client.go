package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Project progress caching. The DB row stays the source of truth; the cache
// is written through after every recompute so dashboard reads skip the join.
func (c *Client) SetProjectProgress(projectID uint, progress int, ttl time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf("project_progress:%d", projectID)
	return c.rdb.Set(ctx, key, progress, ttl).Err()
}

func (c *Client) GetProjectProgress(projectID uint) (int, error) {
	ctx := context.Background()
	key := fmt.Sprintf("project_progress:%d", projectID)
	val, err := c.rdb.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("project progress not cached")
		}
		return 0, fmt.Errorf("failed to get project progress: %w", err)
	}
	return val, nil
}

func (c *Client) DeleteProjectProgress(projectID uint) error {
	ctx := context.Background()
	key := fmt.Sprintf("project_progress:%d", projectID)
	return c.rdb.Del(ctx, key).Err()
}

// Unit financial summary caching for the unit list screens.
func (c *Client) SetUnitSummary(unitID uint, summary interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal unit summary: %w", err)
	}
	key := fmt.Sprintf("unit_summary:%d", unitID)
	return c.rdb.Set(ctx, key, jsonData, ttl).Err()
}

func (c *Client) GetUnitSummary(unitID uint, dest interface{}) error {
	ctx := context.Background()
	key := fmt.Sprintf("unit_summary:%d", unitID)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("unit summary not cached")
		}
		return fmt.Errorf("failed to get unit summary: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) DeleteUnitSummary(unitID uint) error {
	ctx := context.Background()
	key := fmt.Sprintf("unit_summary:%d", unitID)
	return c.rdb.Del(ctx, key).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
