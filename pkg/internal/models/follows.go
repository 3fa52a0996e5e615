package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow rows are hard-deleted, same reasoning as Like.
type Follow struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FollowerID  uuid.UUID `json:"follower_id" gorm:"type:uuid;uniqueIndex:idx_follows_pair;index"`
	FollowingID uuid.UUID `json:"following_id" gorm:"type:uuid;uniqueIndex:idx_follows_pair;index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
