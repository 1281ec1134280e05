// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
type User struct {
	// ID is assigned by the store on creation.
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"type:text;not null"`

	// Email must be unique across all users. Matching is exact, as stored.
	Email string `gorm:"type:text;uniqueIndex;not null"`

	// Password is the bcrypt hash. Plaintext never reaches this field.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
