package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a project case-study with its related collections
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex:idx_projects_slug"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	Content     string    `json:"content" db:"content" gorm:"type:text;not null"`
	Thumbnail   *string   `json:"thumbnail,omitempty" db:"thumbnail" gorm:"type:text"`
	GithubURL   *string   `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	LiveURL     *string   `json:"liveUrl,omitempty" db:"live_url" gorm:"type:text"`
	Featured    bool      `json:"featured" db:"featured" gorm:"not null;default:false"`
	Published   bool      `json:"published" db:"published" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;index:idx_projects_created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`
	UserID      uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index:idx_projects_user_id"`

	User         User           `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Technologies []Technology   `json:"technologies,omitempty" gorm:"many2many:project_technologies"`
	Tags         []Tag          `json:"tags,omitempty" gorm:"many2many:project_tags"`
	Videos       []Video        `json:"videos,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Images       []ProjectImage `json:"images,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
