package catalog

import (
	"fmt"
	"strings"

	"portfolio-backend/errs"
)

const (
	maxTitleLen = 255
	maxNameLen  = 100
)

// ProjectInput is the request-shaped payload for create and update. Featured
// and published default to false when omitted. Relation collections replace
// the stored sets wholesale.
type ProjectInput struct {
	Title        string            `json:"title"`
	Description  *string           `json:"description,omitempty"`
	Content      string            `json:"content"`
	Thumbnail    *string           `json:"thumbnail,omitempty"`
	GithubURL    *string           `json:"githubUrl,omitempty"`
	LiveURL      *string           `json:"liveUrl,omitempty"`
	Featured     bool              `json:"featured"`
	Published    bool              `json:"published"`
	Technologies []TechnologyInput `json:"technologies"`
	Tags         []TagInput        `json:"tags"`
	Videos       []VideoInput      `json:"videos"`
	Images       []ImageInput      `json:"images"`
}

type TechnologyInput struct {
	Name string  `json:"name"`
	Icon *string `json:"icon,omitempty"`
}

type TagInput struct {
	Name string `json:"name"`
}

// VideoInput carries an optional explicit OrderIndex; when nil the item's
// position in the input sequence decides its display order.
type VideoInput struct {
	Title       *string `json:"title,omitempty"`
	URL         string  `json:"url"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
	Description *string `json:"description,omitempty"`
	OrderIndex  *int    `json:"orderIndex,omitempty"`
}

type ImageInput struct {
	URL        string  `json:"url"`
	AltText    *string `json:"altText,omitempty"`
	OrderIndex *int    `json:"orderIndex,omitempty"`
}

// Validate checks required fields and length bounds, reporting the first
// offending field by name
func (in ProjectInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if len(in.Title) > maxTitleLen {
		return errs.NewInvalidFieldError("title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	}
	if strings.TrimSpace(in.Content) == "" {
		return errs.NewMissingRequiredFieldError("content")
	}
	for i, tech := range in.Technologies {
		if strings.TrimSpace(tech.Name) == "" {
			return errs.NewMissingRequiredFieldError(fmt.Sprintf("technologies[%d].name", i))
		}
		if len(tech.Name) > maxNameLen {
			return errs.NewInvalidFieldError(fmt.Sprintf("technologies[%d].name", i),
				fmt.Sprintf("must be at most %d characters", maxNameLen))
		}
	}
	for i, tag := range in.Tags {
		if strings.TrimSpace(tag.Name) == "" {
			return errs.NewMissingRequiredFieldError(fmt.Sprintf("tags[%d].name", i))
		}
		if len(tag.Name) > maxNameLen {
			return errs.NewInvalidFieldError(fmt.Sprintf("tags[%d].name", i),
				fmt.Sprintf("must be at most %d characters", maxNameLen))
		}
	}
	for i, video := range in.Videos {
		if strings.TrimSpace(video.URL) == "" {
			return errs.NewMissingRequiredFieldError(fmt.Sprintf("videos[%d].url", i))
		}
	}
	for i, image := range in.Images {
		if strings.TrimSpace(image.URL) == "" {
			return errs.NewMissingRequiredFieldError(fmt.Sprintf("images[%d].url", i))
		}
	}
	return nil
}
