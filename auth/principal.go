package auth

import (
	"github.com/google/uuid"

	"portfolio-backend/errs"
)

// Recognized roles. RoleAdmin and RoleUser both carry write access to the
// project catalog.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// Principal identifies the acting user. Write operations take it as an
// explicit argument instead of reading an ambient security context, so
// services stay testable without a simulated request.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

// Anonymous is the zero principal used for unauthenticated reads
var Anonymous = Principal{}

// IsAnonymous reports whether the principal carries no identity
func (p Principal) IsAnonymous() bool {
	return p.UserID == uuid.Nil
}

// HasRole reports whether the principal holds the given role
func (p Principal) HasRole(role string) bool {
	return p.Role == role
}

// RequireWriteRole fails with a forbidden error unless the principal holds a
// role allowed to mutate the catalog
func (p Principal) RequireWriteRole() error {
	if p.IsAnonymous() {
		return errs.NewUnauthorizedError("authentication required")
	}
	if p.Role != RoleAdmin && p.Role != RoleUser {
		return errs.NewForbiddenError("write access requires an admin or user role")
	}
	return nil
}
