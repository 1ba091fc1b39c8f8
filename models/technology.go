package models

import "github.com/google/uuid"

// Technology is a shared vocabulary entry referenced by many projects
type Technology struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_technologies_name"`
	Icon *string   `json:"icon,omitempty" db:"icon" gorm:"type:text"`
}

// ProjectTechnology is an explicit join row between projects and technologies.
// Rows are written directly so association replacement can diff added and
// removed pairs instead of clearing the whole set.
type ProjectTechnology struct {
	ProjectID    uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;primaryKey;not null"`
	TechnologyID uuid.UUID `json:"technology_id" db:"technology_id" gorm:"type:uuid;primaryKey;not null"`
}

func (ProjectTechnology) TableName() string {
	return "project_technologies"
}
