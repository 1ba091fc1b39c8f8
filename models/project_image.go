package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectImage is an ordered image owned by exactly one project
type ProjectImage struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	URL        string    `json:"url" db:"url" gorm:"type:text;not null"`
	AltText    *string   `json:"altText,omitempty" db:"alt_text" gorm:"type:text"`
	OrderIndex int       `json:"orderIndex" db:"order_index" gorm:"not null;default:0"`
	ProjectID  uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_images_project_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
}
