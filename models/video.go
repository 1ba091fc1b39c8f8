package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is an ordered media item owned by exactly one project
type Video struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       *string   `json:"title,omitempty" db:"title" gorm:"type:varchar(255)"`
	URL         string    `json:"url" db:"url" gorm:"type:text;not null"`
	Thumbnail   *string   `json:"thumbnail,omitempty" db:"thumbnail" gorm:"type:text"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	OrderIndex  int       `json:"orderIndex" db:"order_index" gorm:"not null;default:0"`
	ProjectID   uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_videos_project_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`
}
