package models

import (
	"time"

	"github.com/google/uuid"
)

// Views are read-only projections assembled fresh per request; every
// aggregate on them is computed at read time and never persisted.

type UserView struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       *string   `json:"full_name"`
	Bio            *string   `json:"bio"`
	AvatarURL      *string   `json:"avatar_url"`
	IsVerified     bool      `json:"is_verified"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type PostView struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Content      string     `json:"content"`
	Excerpt      *string    `json:"excerpt"`
	CoverImage   *string    `json:"cover_image"`
	Language     *string    `json:"language"`
	Author       UserView   `json:"author"`
	Tags         []string   `json:"tags"`
	LikeCount    int64      `json:"like_count"`
	CommentCount int64      `json:"comment_count"`
	IsLiked      bool       `json:"is_liked"`
	IsPublished  bool       `json:"is_published"`
	PublishedAt  *time.Time `json:"published_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CommentView struct {
	ID        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	Author    UserView      `json:"author"`
	ParentID  *uuid.UUID    `json:"parent_id"`
	Replies   []CommentView `json:"replies"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
