// Package handler provides HTTP handlers for the tasks feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/transport/http/dto"
	"todo_backend/internal/feature/tasks/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

// TaskUsecase is the task business logic the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TaskUsecase interface {
	Create(ctx context.Context, ownerID uint, title string) (*entity.Task, error)
	List(ctx context.Context, ownerID uint) ([]entity.Task, error)
	Update(ctx context.Context, ownerID, id uint, patch entity.TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// TaskHandler handles the protected /tasks endpoints. It must be mounted
// behind jwtmw.AuthRequired.
type TaskHandler struct {
	uc TaskUsecase
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(uc TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "Title required"})
		return
	}

	task, err := h.uc.Create(c.Request.Context(), ownerID, req.Title)
	if err != nil {
		h.fail(c, "create task", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTaskRes(task))
}

// List handles GET /tasks.
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	tasks, err := h.uc.List(c.Request.Context(), ownerID)
	if err != nil {
		h.fail(c, "list tasks", err)
		return
	}
	out := make([]dto.TaskRes, 0, len(tasks))
	for i := range tasks {
		out = append(out, dto.NewTaskRes(&tasks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Update handles PUT /tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	// An empty body is an empty patch: the task is returned unchanged, or 404.
	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request body"})
		return
	}

	task, err := h.uc.Update(c.Request.Context(), ownerID, id, req.ToPatch())
	if err != nil {
		h.fail(c, "update task", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), ownerID, id); err != nil {
		h.fail(c, "delete task", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Task deleted"})
}

// owner reads the authenticated user. A missing value means the route was
// registered without the auth middleware.
func (h *TaskHandler) owner(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorRes{Error: "No token provided"})
		return 0, false
	}
	return id, true
}

// taskID parses :id. Anything that is not a positive integer cannot name a
// task, so it is reported as not found.
func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "Task not found"})
		return 0, false
	}
	return uint(id), true
}

// fail maps a usecase error to a response.
func (h *TaskHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "Task not found"})
	case errors.Is(err, usecase.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "Title required"})
	default:
		slog.Error(op+" failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
	}
}
