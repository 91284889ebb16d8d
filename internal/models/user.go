// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in Devlink.
//
// Users are hard-deleted: account removal cascades over the user's posts
// and profile, so keeping a soft-delete tombstone would leave dangling
// snapshots with no owning record.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
