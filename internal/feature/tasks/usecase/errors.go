package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task matches both the ID and the owner.
	// A task owned by someone else is reported the same way as a missing one.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTitleRequired is returned when a task would end up without a title.
	ErrTitleRequired = errors.New("title required")
)
