package models

import (
	"time"
)

// Post is an authored entry on the feed. AuthorName and AuthorAvatar are
// snapshots of the posting user taken at write time and never re-synced,
// so a post keeps its byline even after the author renames themselves.
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	AuthorName   string    `gorm:"not null" json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Likes        []Like    `gorm:"foreignKey:PostID" json:"likes"`
	Comments     []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Like marks a user's like on a post. The composite unique index gives
// likes set semantics: one like per user per post.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is an embedded comment on a post, with the commenter's
// name/avatar snapshotted the same way as the post byline.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;index" json:"post_id"`
	UserID       uint      `gorm:"not null" json:"user_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	AuthorName   string    `gorm:"not null" json:"name"`
	AuthorAvatar string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}
