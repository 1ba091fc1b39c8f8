package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/database"
	"portfolio-backend/models"
)

// ProjectView is the externally visible representation of a project: scalar
// fields flattened together with the owner's identity and the denormalized
// relation collections. Nothing outside this shape leaks to callers; the
// owning user's credentials in particular never appear.
type ProjectView struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Slug         string           `json:"slug"`
	Description  *string          `json:"description,omitempty"`
	Content      string           `json:"content"`
	Thumbnail    *string          `json:"thumbnail,omitempty"`
	GithubURL    *string          `json:"githubUrl,omitempty"`
	LiveURL      *string          `json:"liveUrl,omitempty"`
	Featured     bool             `json:"featured"`
	Published    bool             `json:"published"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	UserID       uuid.UUID        `json:"userId"`
	Username     string           `json:"username"`
	Technologies []TechnologyView `json:"technologies"`
	Tags         []TagView        `json:"tags"`
	Videos       []VideoView      `json:"videos"`
	Images       []ImageView      `json:"images"`
}

type TechnologyView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon *string   `json:"icon,omitempty"`
}

type TagView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type VideoView struct {
	ID          uuid.UUID `json:"id"`
	Title       *string   `json:"title,omitempty"`
	URL         string    `json:"url"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
	Description *string   `json:"description,omitempty"`
	OrderIndex  int       `json:"orderIndex"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ImageView struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	AltText    *string   `json:"altText,omitempty"`
	OrderIndex int       `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PageView is the page envelope returned by listing operations
type PageView struct {
	Content       []ProjectView `json:"content"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int64         `json:"totalElements"`
}

// NewProjectView assembles the view for a single project. Owned collections
// are ordered by orderIndex, identity breaking ties, regardless of how they
// were loaded.
func NewProjectView(p models.Project) ProjectView {
	view := ProjectView{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Content:      p.Content,
		Thumbnail:    p.Thumbnail,
		GithubURL:    p.GithubURL,
		LiveURL:      p.LiveURL,
		Featured:     p.Featured,
		Published:    p.Published,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		UserID:       p.UserID,
		Username:     p.User.Username,
		Technologies: make([]TechnologyView, 0, len(p.Technologies)),
		Tags:         make([]TagView, 0, len(p.Tags)),
		Videos:       make([]VideoView, 0, len(p.Videos)),
		Images:       make([]ImageView, 0, len(p.Images)),
	}

	for _, tech := range p.Technologies {
		view.Technologies = append(view.Technologies, TechnologyView{ID: tech.ID, Name: tech.Name, Icon: tech.Icon})
	}
	for _, tag := range p.Tags {
		view.Tags = append(view.Tags, TagView{ID: tag.ID, Name: tag.Name})
	}

	videos := append([]models.Video(nil), p.Videos...)
	sort.SliceStable(videos, func(i, j int) bool {
		if videos[i].OrderIndex != videos[j].OrderIndex {
			return videos[i].OrderIndex < videos[j].OrderIndex
		}
		return strings.Compare(videos[i].ID.String(), videos[j].ID.String()) < 0
	})
	for _, v := range videos {
		view.Videos = append(view.Videos, VideoView{
			ID:          v.ID,
			Title:       v.Title,
			URL:         v.URL,
			Thumbnail:   v.Thumbnail,
			Description: v.Description,
			OrderIndex:  v.OrderIndex,
			CreatedAt:   v.CreatedAt,
			UpdatedAt:   v.UpdatedAt,
		})
	}

	images := append([]models.ProjectImage(nil), p.Images...)
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].OrderIndex != images[j].OrderIndex {
			return images[i].OrderIndex < images[j].OrderIndex
		}
		return strings.Compare(images[i].ID.String(), images[j].ID.String()) < 0
	})
	for _, img := range images {
		view.Images = append(view.Images, ImageView{
			ID:         img.ID,
			URL:        img.URL,
			AltText:    img.AltText,
			OrderIndex: img.OrderIndex,
			CreatedAt:  img.CreatedAt,
		})
	}

	return view
}

// newPageView projects every entity in a repository page
func newPageView(page database.ProjectPage) PageView {
	view := PageView{
		Content:       make([]ProjectView, 0, len(page.Content)),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
	}
	for _, p := range page.Content {
		view.Content = append(view.Content, NewProjectView(p))
	}
	return view
}
