// Package adapters provides repository implementations for the tasks feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// taskGorm is a GORM implementation of the TaskRepository interface.
type taskGorm struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskRepository creates a task repository backed by the given connection.
func NewTaskRepository(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// Create inserts task and fills in its ID and timestamps.
func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// ListByOwner returns the owner's tasks in store order.
func (r *taskGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateByIDAndOwner writes the fields present in patch and returns the
// resulting row. Columns absent from patch are not part of the UPDATE.
func (r *taskGorm) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint, patch entity.TaskPatch) (*entity.Task, error) {
	updates := make(map[string]interface{}, 2)
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	var task entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			result := tx.Model(&entity.Task{}).
				Where("id = ? AND user_id = ?", id, ownerID).
				Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return usecase.ErrTaskNotFound
			}
		}
		return tx.Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// DeleteByIDAndOwner removes the task in a single filtered DELETE.
func (r *taskGorm) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&entity.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
