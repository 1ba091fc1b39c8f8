package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// ProjectPage is a bounded slice of an ordered project listing plus the total
// count of matching rows
type ProjectPage struct {
	Content       []models.Project
	Page          int
	Size          int
	TotalElements int64
}

// listOrder keeps every listing deterministic: newest first, identity as the
// tie-breaker
const listOrder = "created_at DESC, id ASC"

// withRelations preloads the full relation graph. Owned collections come back
// in display order; technologies and tags are unordered sets.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Technologies").
		Preload("Tags").
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		})
}

// FindBySlug returns the project with the given slug, or nil if none exists
func (r *ProjectRepo) FindBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := withRelations(r.db).Where("slug = ?", slug).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByID returns the project with the given id, or nil if none exists
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := withRelations(r.db).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether another project already uses slug. excludeID
// skips the project being re-slugged on update; pass uuid.Nil on create.
func (r *ProjectRepo) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	q := r.db.Model(&models.Project{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPublished returns published projects one page at a time
func (r *ProjectRepo) ListPublished(page, size int) (ProjectPage, error) {
	return r.paged(page, size, func(db *gorm.DB) *gorm.DB {
		return db.Where("published = ?", true)
	})
}

// ListAll returns every project regardless of publish state
func (r *ProjectRepo) ListAll(page, size int) (ProjectPage, error) {
	return r.paged(page, size, func(db *gorm.DB) *gorm.DB {
		return db
	})
}

// ListFeatured returns all published, featured projects without pagination
func (r *ProjectRepo) ListFeatured() ([]models.Project, error) {
	var projects []models.Project
	err := withRelations(r.db).
		Where("published = ? AND featured = ?", true, true).
		Order(listOrder).
		Find(&projects).Error
	return projects, err
}

// Search matches published projects whose title, description, or content
// contains keyword, case-insensitively. The publish filter applies to every
// match branch, so an unpublished project never surfaces through its
// description or content alone.
func (r *ProjectRepo) Search(keyword string, page, size int) (ProjectPage, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	return r.paged(page, size, func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"published = ? AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(content) LIKE ?)",
			true, pattern, pattern, pattern,
		)
	})
}

// ListByUser returns every project owned by userID, drafts included
func (r *ProjectRepo) ListByUser(userID uuid.UUID, page, size int) (ProjectPage, error) {
	return r.paged(page, size, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}

// paged runs filter twice against fresh sessions: once for the true total,
// once for the page content. A page past the end yields empty content with
// the correct count.
func (r *ProjectRepo) paged(page, size int, filter func(*gorm.DB) *gorm.DB) (ProjectPage, error) {
	result := ProjectPage{Content: []models.Project{}, Page: page, Size: size}

	if err := filter(r.db.Model(&models.Project{})).Count(&result.TotalElements).Error; err != nil {
		return result, err
	}

	err := withRelations(filter(r.db)).
		Order(listOrder).
		Limit(size).
		Offset(page * size).
		Find(&result.Content).Error
	return result, err
}

// Add inserts a new project row
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Omit("User", "Technologies", "Tags", "Videos", "Images").Create(project).Error
}

// Update writes the scalar columns of an existing project row
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Omit("User", "Technologies", "Tags", "Videos", "Images").Save(project).Error
}

// Delete removes a project together with its owned videos and images.
// Technology and tag rows survive; only the join rows referencing the
// project are removed.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	if err := r.db.Where("project_id = ?", id).Delete(&models.Video{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("project_id = ?", id).Delete(&models.ProjectTechnology{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("project_id = ?", id).Delete(&models.ProjectTag{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// ReplaceTechnologies reconciles the project's technology set against
// techIDs, inserting and deleting only the join rows that changed.
func (r *ProjectRepo) ReplaceTechnologies(projectID uuid.UUID, techIDs []uuid.UUID) error {
	var current []models.ProjectTechnology
	if err := r.db.Where("project_id = ?", projectID).Find(&current).Error; err != nil {
		return err
	}

	existing := make(map[uuid.UUID]bool, len(current))
	for _, row := range current {
		existing[row.TechnologyID] = true
	}
	desired := make(map[uuid.UUID]bool, len(techIDs))

	var added []models.ProjectTechnology
	for _, id := range techIDs {
		if desired[id] {
			continue
		}
		desired[id] = true
		if !existing[id] {
			added = append(added, models.ProjectTechnology{ProjectID: projectID, TechnologyID: id})
		}
	}

	var removed []uuid.UUID
	for id := range existing {
		if !desired[id] {
			removed = append(removed, id)
		}
	}

	if len(added) > 0 {
		if err := r.db.Create(&added).Error; err != nil {
			return err
		}
	}
	if len(removed) > 0 {
		if err := r.db.
			Where("project_id = ? AND technology_id IN ?", projectID, removed).
			Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceTags reconciles the project's tag set against tagIDs
func (r *ProjectRepo) ReplaceTags(projectID uuid.UUID, tagIDs []uuid.UUID) error {
	var current []models.ProjectTag
	if err := r.db.Where("project_id = ?", projectID).Find(&current).Error; err != nil {
		return err
	}

	existing := make(map[uuid.UUID]bool, len(current))
	for _, row := range current {
		existing[row.TagID] = true
	}
	desired := make(map[uuid.UUID]bool, len(tagIDs))

	var added []models.ProjectTag
	for _, id := range tagIDs {
		if desired[id] {
			continue
		}
		desired[id] = true
		if !existing[id] {
			added = append(added, models.ProjectTag{ProjectID: projectID, TagID: id})
		}
	}

	var removed []uuid.UUID
	for id := range existing {
		if !desired[id] {
			removed = append(removed, id)
		}
	}

	if len(added) > 0 {
		if err := r.db.Create(&added).Error; err != nil {
			return err
		}
	}
	if len(removed) > 0 {
		if err := r.db.
			Where("project_id = ? AND tag_id IN ?", projectID, removed).
			Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceVideos swaps the project's owned video collection wholesale
func (r *ProjectRepo) ReplaceVideos(projectID uuid.UUID, videos []models.Video) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&models.Video{}).Error; err != nil {
		return err
	}
	if len(videos) == 0 {
		return nil
	}
	return r.db.Create(&videos).Error
}

// ReplaceImages swaps the project's owned image collection wholesale
func (r *ProjectRepo) ReplaceImages(projectID uuid.UUID, images []models.ProjectImage) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&models.ProjectImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return r.db.Create(&images).Error
}
