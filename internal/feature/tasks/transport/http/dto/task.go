// Package dto defines request and response bodies for the task endpoints.
package dto

import (
	"time"

	"todo_backend/internal/feature/tasks/domain/entity"
)

// CreateTaskReq is the body of POST /tasks.
type CreateTaskReq struct {
	Title string `json:"title"`
}

// UpdateTaskReq is the body of PUT /tasks/:id. Omitted (or null) fields stay unchanged.
type UpdateTaskReq struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// ToPatch converts the request into a partial update.
func (r UpdateTaskReq) ToPatch() entity.TaskPatch {
	return entity.TaskPatch{Title: r.Title, Completed: r.Completed}
}

// TaskRes is the JSON representation of a task.
type TaskRes struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UserID    uint      `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTaskRes maps an entity to its response form.
func NewTaskRes(t *entity.Task) TaskRes {
	return TaskRes{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// MessageRes carries a human-readable acknowledgment.
type MessageRes struct {
	Message string `json:"message"`
}

// ErrorRes is the body of every error response.
type ErrorRes struct {
	Error string `json:"error"`
}
