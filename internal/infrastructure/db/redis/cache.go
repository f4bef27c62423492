package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskvault/todo-api/internal/api/metrics"
	"github.com/taskvault/todo-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// TodoCache is a per-owner cache of todo list results backed by Redis.
// Key format: todos:<owner_id>. Entries expire after cacheTTL and are
// invalidated eagerly on every write to the owner's todos.
type TodoCache struct {
	client *redis.Client
}

// NewTodoCache creates a TodoCache wrapping the given Redis client.
func NewTodoCache(client *redis.Client) *TodoCache {
	return &TodoCache{client: client}
}

func (c *TodoCache) Get(ctx context.Context, ownerID string) ([]domain.Todo, bool, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.TodoCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var todos []domain.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		// A corrupt entry is treated as a miss.
		metrics.TodoCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}

	metrics.TodoCacheTotal.WithLabelValues("hit").Inc()
	return todos, true, nil
}

func (c *TodoCache) Set(ctx context.Context, ownerID string, todos []domain.Todo) error {
	raw, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(ownerID), raw, cacheTTL).Err()
}

func (c *TodoCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, c.key(ownerID)).Err()
}

func (c *TodoCache) key(ownerID string) string {
	return "todos:" + ownerID
}
