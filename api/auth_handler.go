package api

import (
	"encoding/json"
	"net/http"
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

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    auth.TokenProvider
}

func newAuthHandler(userRepo *database.UserRepo, tokens auth.TokenProvider) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type jwtAuthResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

// register creates a new user account with the default user role
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if strings.TrimSpace(req.Username) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if len(req.Password) < 8 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("password", "must be at least 8 characters"))
			return
		}

		existing, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewConflictError("username already taken"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{
			ID:           uuid.New(),
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         auth.RoleUser,
			CreatedAt:    time.Now().UTC(),
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, userResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})
	}
}

// login verifies credentials and issues a bearer token
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		token, err := h.tokens.Generate(auth.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to sign token")
			h.responder.WriteError(w, errs.NewInternalError("could not issue token"))
			return
		}

		h.responder.WriteJSON(w, jwtAuthResponse{AccessToken: token, TokenType: "Bearer"})
	}
}

// me returns the authenticated user's profile
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := ctxPrincipal(r.Context())
		if principal.IsAnonymous() {
			h.responder.WriteError(w, errs.NewUnauthorizedError("authentication required"))
			return
		}

		user, err := h.userRepo.FindByID(principal.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		h.responder.WriteJSON(w, userResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})
	}
}
