// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. The password column holds a bcrypt
// hash and is excluded from JSON everywhere except the register response,
// which returns the stored document verbatim for legacy client compatibility.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}
