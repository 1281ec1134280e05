// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// DefaultTTL is used when a non-positive TTL is passed to the constructor.
const DefaultTTL = 5 * time.Minute

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// CachingTaskRepository decorates a TaskRepository with a Redis read-through
// cache of each owner's task list. Entries are stored under a per-owner
// generation number; every write bumps the generation after the database
// commit, so a list snapshot taken before the write is only ever stored
// under a generation that readers no longer use.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
// A nil rdb turns the decorator into a pass-through.
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "tasks"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the task and invalidates the owner's cached list.
func (c *CachingTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if err := c.inner.Create(ctx, task); err != nil {
		return err
	}
	c.invalidate(ctx, task.UserID)
	return nil
}

// ListByOwner checks the cache first, then falls back to the inner repository.
func (c *CachingTaskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	if c.rdb == nil {
		return c.inner.ListByOwner(ctx, ownerID)
	}

	// The generation must be read before the database so that a concurrent
	// write always moves readers past whatever this call stores.
	gen, err := c.rdb.Get(ctx, c.genKey(ownerID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return c.inner.ListByOwner(ctx, ownerID)
	}
	key := c.cacheKey(ownerID, gen)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// UpdateByIDAndOwner updates the task and invalidates the owner's cached list.
func (c *CachingTaskRepository) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint, patch entity.TaskPatch) (*entity.Task, error) {
	task, err := c.inner.UpdateByIDAndOwner(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, ownerID)
	return task, nil
}

// DeleteByIDAndOwner deletes the task and invalidates the owner's cached list.
func (c *CachingTaskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error {
	if err := c.inner.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

// invalidate bumps the owner's generation. It is best effort: the write has
// already been committed.
func (c *CachingTaskRepository) invalidate(ctx context.Context, ownerID uint) {
	if c.rdb == nil {
		return
	}
	key := c.genKey(ownerID)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		slog.Warn("task cache invalidation failed", "key", key, "error", err)
	}
}

// cacheKey generates the cache key for an owner's task list at a generation.
func (c *CachingTaskRepository) cacheKey(ownerID uint, gen int64) string {
	return fmt.Sprintf("%s:user:%d:%d", c.namespace, ownerID, gen)
}

// genKey generates the key holding an owner's current generation.
func (c *CachingTaskRepository) genKey(ownerID uint) string {
	return fmt.Sprintf("%s:gen:%d", c.namespace, ownerID)
}
