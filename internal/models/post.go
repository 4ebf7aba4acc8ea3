package models

import "time"

// CreatedAtLayout is the ISO-8601 layout used for post timestamps (UTC, millisecond precision).
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Post represents a post written by a user. Posts are only ever created or hard-deleted.
type Post struct {
	ID     string `gorm:"primaryKey;type:text" json:"id"`
	UserID string `gorm:"type:text;not null;index" json:"user_id"`
	Title  string `gorm:"type:text;not null" json:"title"`
	Body   string `gorm:"type:text;not null" json:"body"`
	// CreatedAt is stored verbatim as an ISO-8601 string.
	CreatedAt string `gorm:"type:text;not null" json:"created_at"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string {
	return "posts"
}

// FormatCreatedAt renders t the way post timestamps are persisted.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}
