package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"portfolio-backend/database"
	"portfolio-backend/errs"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// slugAttemptLimit bounds the numeric disambiguation loop. Running out means
// the request fails with a conflict rather than spinning.
const slugAttemptLimit = 1000

// Slugify normalizes a title into its URL-safe form: lowercase, whitespace
// runs collapsed to single hyphens, everything outside [a-z0-9-] stripped,
// repeated hyphens collapsed, leading/trailing hyphens trimmed.
func Slugify(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))
	hyphenated := whitespaceRuns.ReplaceAllString(lower, "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	collapsed := hyphenRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(collapsed, "-")
}

// resolveSlug derives a slug from title that is unique across all projects in
// the store snapshot behind repo. Collisions get a numeric suffix starting at
// 2. excludeID skips the project being re-slugged on update.
func resolveSlug(repo *database.ProjectRepo, title string, excludeID uuid.UUID) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", errs.NewInvalidTitleError(title)
	}

	candidate := base
	for n := 2; n <= slugAttemptLimit; n++ {
		taken, err := repo.SlugExists(candidate, excludeID)
		if err != nil {
			return "", errs.NewDatabaseError("check slug for", "project", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}

	return "", errs.NewConflictError(fmt.Sprintf("could not allocate a unique slug for %q", base))
}
