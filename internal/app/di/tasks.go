// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	taskadapters "todo_backend/internal/feature/tasks/adapters"
	"todo_backend/internal/feature/tasks/usecase"
	"todo_backend/internal/platform/cache"
)

// NewTaskRepository creates a TaskRepository implementation.
// If Redis is available, the gorm repository is wrapped with a list cache.
// Otherwise, the gorm repository is returned as is.
func NewTaskRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.TaskRepository {
	repo := taskadapters.NewTaskRepository(db)
	if rdb != nil {
		return cache.NewCachingTaskRepository(rdb, ttl, repo, "tasks")
	}
	return repo
}
