package models

import (
	"time"
)

// Profile is the career/social record attached one-to-one to a User.
// The unique index on UserID is what enforces "at most one profile per
// user" at the store level; the service layer treats a violation during
// create as a concurrent upsert and retries as an update.
type Profile struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User              `gorm:"foreignKey:UserID" json:"user"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Status         string            `gorm:"not null" json:"status"`
	GithubUsername string            `json:"github_username,omitempty"`
	Skills         []string          `gorm:"serializer:json" json:"skills"`
	Social         map[string]string `gorm:"serializer:json" json:"social,omitempty"`
	Experience     []Experience      `gorm:"foreignKey:ProfileID" json:"experience"`
	Education      []Education       `gorm:"foreignKey:ProfileID" json:"education"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Experience is an embedded career entry on a profile. Entries have no
// identity outside their parent; ordering is newest-first (prepend).
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location,omitempty"`
	FromDate    time.Time  `gorm:"not null" json:"from_date"`
	ToDate      *time.Time `json:"to_date,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education mirrors Experience for schooling entries.
type Education struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProfileID    uint      `gorm:"not null;index" json:"-"`
	School       string    `gorm:"not null" json:"school"`
	Degree       string    `gorm:"not null" json:"degree"`
	FieldOfStudy string    `gorm:"not null" json:"field_of_study"`
	FromDate     time.Time `gorm:"not null" json:"from_date"`
	ToDate       time.Time `gorm:"not null" json:"to_date"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
