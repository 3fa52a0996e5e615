package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like rows are hard-deleted so the unique pair index stays usable after an
// unlike.
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_likes_user_post"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;uniqueIndex:idx_likes_user_post;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
