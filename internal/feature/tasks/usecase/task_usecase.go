// Package usecase implements the business logic for task operations.
package usecase

import (
	"context"
	"strings"

	"todo_backend/internal/feature/tasks/domain/entity"
)

// TaskRepository abstracts task persistence. Every method takes the owner's
// ID and applies it as a filter in the same statement as the ID.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error)
	UpdateByIDAndOwner(ctx context.Context, id, ownerID uint, patch entity.TaskPatch) (*entity.Task, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error
}

// TaskUsecase provides business logic for task operations.
type TaskUsecase struct {
	repo TaskRepository
}

// NewTaskUsecase creates a new TaskUsecase with the given repository.
func NewTaskUsecase(r TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: r}
}

// Create adds an incomplete task owned by ownerID.
func (u *TaskUsecase) Create(ctx context.Context, ownerID uint, title string) (*entity.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	task := &entity.Task{
		Title:     title,
		Completed: false,
		UserID:    ownerID,
	}
	if err := u.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns all tasks owned by ownerID. The slice is never nil.
func (u *TaskUsecase) List(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	tasks, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

// Update applies only the fields present in patch.
func (u *TaskUsecase) Update(ctx context.Context, ownerID, id uint, patch entity.TaskPatch) (*entity.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ErrTitleRequired
	}
	return u.repo.UpdateByIDAndOwner(ctx, id, ownerID, patch)
}

// Delete removes the task if ownerID owns it.
func (u *TaskUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	return u.repo.DeleteByIDAndOwner(ctx, id, ownerID)
}
