package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	BaseModel

	Title      string  `json:"title" gorm:"size:255"`
	Slug       string  `json:"slug" gorm:"index"`
	Content    string  `json:"content"`
	Excerpt    *string `json:"excerpt"`
	CoverImage *string `json:"cover_image"`
	Language   *string `json:"language"`

	AuthorID uuid.UUID `json:"author_id" gorm:"type:uuid;index"`
	Author   User      `json:"author"`

	Tags []Tag `json:"tags" gorm:"many2many:post_tags"`

	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
}
