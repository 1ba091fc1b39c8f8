package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-backend/auth"
	"portfolio-backend/catalog"
	"portfolio-backend/errs"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *catalog.Service
}

func newProjectHandler(catalogService *catalog.Service) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   catalogService,
	}
}

// listProjects retrieves a page of published projects. Admins may pass
// includeDrafts=true to list everything.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := pagingParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		onlyPublished := true
		if r.URL.Query().Get("includeDrafts") == "true" {
			principal := ctxPrincipal(r.Context())
			if !principal.HasRole(auth.RoleAdmin) {
				h.responder.WriteError(w, errs.NewForbiddenError("only admins may list drafts"))
				return
			}
			onlyPublished = false
		}

		result, err := h.catalog.List(page, size, onlyPublished)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// getProject retrieves a single project by its slug
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		view, err := h.catalog.GetBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// getFeaturedProjects retrieves all published featured projects
func (h projectHandler) getFeaturedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := h.catalog.ListFeatured()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, views)
	}
}

// searchProjects retrieves a page of published projects matching the keyword
func (h projectHandler) searchProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := pagingParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		keyword := r.URL.Query().Get("keyword")

		result, err := h.catalog.Search(keyword, page, size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// listUserProjects retrieves a page of one user's projects, drafts included
func (h projectHandler) listUserProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}
		page, size, err := pagingParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.catalog.ListByUser(ctxPrincipal(r.Context()), userID, page, size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// createProject creates a new project owned by the authenticated user
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input catalog.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		view, err := h.catalog.Create(ctxPrincipal(r.Context()), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, view)
	}
}

// updateProject replaces an existing project with the submitted payload
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		var input catalog.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		view, err := h.catalog.Update(projectID, ctxPrincipal(r.Context()), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// deleteProject deletes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.catalog.Delete(projectID, ctxPrincipal(r.Context())); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// pagingParams reads zero-based page and positive size query parameters,
// defaulting to the first page of ten
func pagingParams(r *http.Request) (page, size int, err error) {
	page, size = 0, 10

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewInvalidFieldError("page", "must be an integer")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewInvalidFieldError("size", "must be an integer")
		}
	}
	return page, size, nil
}
