package models

import "github.com/google/uuid"

type Comment struct {
	BaseModel

	Content string `json:"content"`

	PostID   uuid.UUID `json:"post_id" gorm:"type:uuid;index"`
	Post     Post      `json:"-"`
	AuthorID uuid.UUID `json:"author_id" gorm:"type:uuid"`
	Author   User      `json:"author"`

	// ParentID being nil marks a root comment. It must reference a comment
	// on the same post.
	ParentID *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
}
