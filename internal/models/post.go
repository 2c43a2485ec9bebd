package models

import (
	"time"
)

// Post carries a denormalized author snapshot (name, avatar) alongside the
// author reference, matching the wire format clients already consume.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	Likes     []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// Like records one user liking one post. The composite unique index is what
// enforces the at-most-one-like-per-user invariant under concurrent requests.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user"`
	CreatedAt time.Time `json:"-"`
}

// Comment is a single comment on a post, with its own author snapshot.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"-"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	UserID    uint      `gorm:"not null" json:"user"`
	CreatedAt time.Time `json:"date"`
}
