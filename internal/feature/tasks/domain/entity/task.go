// Package entity defines the domain models for the tasks feature.
package entity

import "time"

// Task is a to-do item. Every task has exactly one owner, and every read or
// write is filtered by that owner.
type Task struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"type:text;not null"`
	Completed bool   `gorm:"not null;default:false"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title     *string
	Completed *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}
