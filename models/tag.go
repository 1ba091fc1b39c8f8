package models

import "github.com/google/uuid"

// Tag is a shared label referenced by many projects
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_tags_name"`
}

// ProjectTag is an explicit join row between projects and tags
type ProjectTag struct {
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;primaryKey;not null"`
	TagID     uuid.UUID `json:"tag_id" db:"tag_id" gorm:"type:uuid;primaryKey;not null"`
}

func (ProjectTag) TableName() string {
	return "project_tags"
}
