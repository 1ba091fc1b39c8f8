package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-backend/auth"
	"portfolio-backend/database"
	"portfolio-backend/errs"
	"portfolio-backend/models"
)

// Service exposes the public project catalog operations. Reads run against
// the store's default isolation; every write executes inside a single
// transaction so slug allocation and relation replacement are never partially
// visible.
type Service struct {
	db     database.Database
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(db database.Database) *Service {
	return &Service{
		db:     db,
		logger: log.With().Str("serviceName", "catalogService").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of projects, newest first. With onlyPublished set,
// drafts are filtered out.
func (s *Service) List(page, size int, onlyPublished bool) (PageView, error) {
	if err := validatePaging(page, size); err != nil {
		return PageView{}, err
	}

	var (
		result database.ProjectPage
		err    error
	)
	if onlyPublished {
		result, err = s.db.ProjectRepo().ListPublished(page, size)
	} else {
		result, err = s.db.ProjectRepo().ListAll(page, size)
	}
	if err != nil {
		return PageView{}, errs.NewDatabaseError("list", "projects", err)
	}
	return newPageView(result), nil
}

// GetBySlug returns the project published under slug
func (s *Service) GetBySlug(slug string) (ProjectView, error) {
	if strings.TrimSpace(slug) == "" {
		return ProjectView{}, errs.NewMissingRequiredFieldError("slug")
	}

	project, err := s.db.ProjectRepo().FindBySlug(slug)
	if err != nil {
		return ProjectView{}, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return ProjectView{}, errs.NewNotFound("project")
	}
	return NewProjectView(*project), nil
}

// ListFeatured returns every published, featured project without pagination
func (s *Service) ListFeatured() ([]ProjectView, error) {
	projects, err := s.db.ProjectRepo().ListFeatured()
	if err != nil {
		return nil, errs.NewDatabaseError("list", "featured projects", err)
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, NewProjectView(p))
	}
	return views, nil
}

// Search returns one page of published projects matching keyword in title,
// description, or content
func (s *Service) Search(keyword string, page, size int) (PageView, error) {
	if strings.TrimSpace(keyword) == "" {
		return PageView{}, errs.NewMissingRequiredFieldError("keyword")
	}
	if err := validatePaging(page, size); err != nil {
		return PageView{}, err
	}

	result, err := s.db.ProjectRepo().Search(keyword, page, size)
	if err != nil {
		return PageView{}, errs.NewDatabaseError("search", "projects", err)
	}
	return newPageView(result), nil
}

// ListByUser returns one page of the given user's projects, drafts included.
// Only the owner or an admin may see the unfiltered list.
func (s *Service) ListByUser(principal auth.Principal, userID uuid.UUID, page, size int) (PageView, error) {
	if principal.UserID != userID && !principal.HasRole(auth.RoleAdmin) {
		return PageView{}, errs.NewForbiddenError("only the owner may list their drafts")
	}
	if err := validatePaging(page, size); err != nil {
		return PageView{}, err
	}

	result, err := s.db.ProjectRepo().ListByUser(userID, page, size)
	if err != nil {
		return PageView{}, errs.NewDatabaseError("list", "user projects", err)
	}
	return newPageView(result), nil
}

// Create validates input, allocates a unique slug, and persists the project
// with its full relation graph in one transaction. The acting principal must
// hold a write role and becomes the owner.
func (s *Service) Create(principal auth.Principal, input ProjectInput) (ProjectView, error) {
	if err := principal.RequireWriteRole(); err != nil {
		return ProjectView{}, err
	}
	if err := input.Validate(); err != nil {
		return ProjectView{}, err
	}

	projectID := uuid.New()
	err := s.db.Transaction(func(tx database.Database) error {
		slug, err := resolveSlug(tx.ProjectRepo(), input.Title, uuid.Nil)
		if err != nil {
			return err
		}

		now := s.now()
		project := models.Project{
			ID:          projectID,
			Title:       input.Title,
			Slug:        slug,
			Description: input.Description,
			Content:     input.Content,
			Thumbnail:   input.Thumbnail,
			GithubURL:   input.GithubURL,
			LiveURL:     input.LiveURL,
			Featured:    input.Featured,
			Published:   input.Published,
			CreatedAt:   now,
			UpdatedAt:   now,
			UserID:      principal.UserID,
		}
		if err := tx.ProjectRepo().Add(&project); err != nil {
			return errs.NewDatabaseError("create", "project", err)
		}

		return s.applyRelations(tx, projectID, input, now, true)
	})
	if err != nil {
		return ProjectView{}, err
	}

	s.logger.Info().Str("projectId", projectID.String()).Msg("project created")
	return s.viewByID(projectID)
}

// Update replaces the project's scalar fields and relation collections with
// the input. The slug is re-derived only when the title changed, keeping the
// project's own slug out of the uniqueness check.
func (s *Service) Update(id uuid.UUID, principal auth.Principal, input ProjectInput) (ProjectView, error) {
	if err := principal.RequireWriteRole(); err != nil {
		return ProjectView{}, err
	}
	if err := input.Validate(); err != nil {
		return ProjectView{}, err
	}

	err := s.db.Transaction(func(tx database.Database) error {
		existing, err := tx.ProjectRepo().FindByID(id)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		if existing == nil {
			return errs.NewNotFound("project")
		}

		slug := existing.Slug
		if input.Title != existing.Title {
			slug, err = resolveSlug(tx.ProjectRepo(), input.Title, id)
			if err != nil {
				return err
			}
		}

		now := s.now()
		project := models.Project{
			ID:          id,
			Title:       input.Title,
			Slug:        slug,
			Description: input.Description,
			Content:     input.Content,
			Thumbnail:   input.Thumbnail,
			GithubURL:   input.GithubURL,
			LiveURL:     input.LiveURL,
			Featured:    input.Featured,
			Published:   input.Published,
			CreatedAt:   existing.CreatedAt,
			UpdatedAt:   now,
			UserID:      existing.UserID,
		}
		if err := tx.ProjectRepo().Update(&project); err != nil {
			return errs.NewDatabaseError("update", "project", err)
		}

		// Owned collections are renumbered by input sequence order on
		// update, so order keys stay total within the parent.
		return s.applyRelations(tx, id, input, now, false)
	})
	if err != nil {
		return ProjectView{}, err
	}

	s.logger.Info().Str("projectId", id.String()).Msg("project updated")
	return s.viewByID(id)
}

// Delete removes the project and, through ownership, its videos and images.
// Shared technologies and tags are only detached. Missing ids fail with a
// not-found error; the operation is not idempotent.
func (s *Service) Delete(id uuid.UUID, principal auth.Principal) error {
	if err := principal.RequireWriteRole(); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx database.Database) error {
		existing, err := tx.ProjectRepo().FindByID(id)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		if existing == nil {
			return errs.NewNotFound("project")
		}
		if err := tx.ProjectRepo().Delete(id); err != nil {
			return errs.NewDatabaseError("delete", "project", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("projectId", id.String()).Msg("project deleted")
	return nil
}

// applyRelations replaces the project's association sets and owned
// collections to match the input. Technologies and tags are reused by name or
// created on first reference. respectExplicitOrder keeps orderIndex values
// supplied on create; otherwise items are renumbered by sequence position.
func (s *Service) applyRelations(tx database.Database, projectID uuid.UUID, input ProjectInput, now time.Time, respectExplicitOrder bool) error {
	techIDs := make([]uuid.UUID, 0, len(input.Technologies))
	for _, techInput := range input.Technologies {
		tech, err := tx.TechnologyRepo().FindOrCreate(techInput.Name, techInput.Icon)
		if err != nil {
			return errs.NewDatabaseError("resolve", "technology", err)
		}
		techIDs = append(techIDs, tech.ID)
	}
	if err := tx.ProjectRepo().ReplaceTechnologies(projectID, techIDs); err != nil {
		return errs.NewDatabaseError("replace", "project technologies", err)
	}

	tagIDs := make([]uuid.UUID, 0, len(input.Tags))
	for _, tagInput := range input.Tags {
		tag, err := tx.TagRepo().FindOrCreate(tagInput.Name)
		if err != nil {
			return errs.NewDatabaseError("resolve", "tag", err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	if err := tx.ProjectRepo().ReplaceTags(projectID, tagIDs); err != nil {
		return errs.NewDatabaseError("replace", "project tags", err)
	}

	videos := make([]models.Video, 0, len(input.Videos))
	for i, videoInput := range input.Videos {
		orderIndex := i
		if respectExplicitOrder && videoInput.OrderIndex != nil {
			orderIndex = *videoInput.OrderIndex
		}
		videos = append(videos, models.Video{
			ID:          uuid.New(),
			Title:       videoInput.Title,
			URL:         videoInput.URL,
			Thumbnail:   videoInput.Thumbnail,
			Description: videoInput.Description,
			OrderIndex:  orderIndex,
			ProjectID:   projectID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := tx.ProjectRepo().ReplaceVideos(projectID, videos); err != nil {
		return errs.NewDatabaseError("replace", "project videos", err)
	}

	images := make([]models.ProjectImage, 0, len(input.Images))
	for i, imageInput := range input.Images {
		orderIndex := i
		if respectExplicitOrder && imageInput.OrderIndex != nil {
			orderIndex = *imageInput.OrderIndex
		}
		images = append(images, models.ProjectImage{
			ID:         uuid.New(),
			URL:        imageInput.URL,
			AltText:    imageInput.AltText,
			OrderIndex: orderIndex,
			ProjectID:  projectID,
			CreatedAt:  now,
		})
	}
	if err := tx.ProjectRepo().ReplaceImages(projectID, images); err != nil {
		return errs.NewDatabaseError("replace", "project images", err)
	}

	return nil
}

// viewByID reloads the committed relation graph and projects it
func (s *Service) viewByID(id uuid.UUID) (ProjectView, error) {
	project, err := s.db.ProjectRepo().FindByID(id)
	if err != nil {
		return ProjectView{}, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return ProjectView{}, errs.NewNotFound("project")
	}
	return NewProjectView(*project), nil
}

func validatePaging(page, size int) error {
	if page < 0 {
		return errs.NewInvalidFieldError("page", "must not be negative")
	}
	if size <= 0 {
		return errs.NewInvalidFieldError("size", "must be positive")
	}
	return nil
}
