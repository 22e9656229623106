package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oselz/watch-catalog-api/internal/api"
	"github.com/oselz/watch-catalog-api/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service UserService
}

func NewUserHandler(service UserService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetAllUsers handles GET /users/v1 - public listing of non-deleted users.
func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "GetAllUsers"))

	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to retrieve users", slog.Any("error", err))
		api.EnvelopeError(w, r, http.StatusInternalServerError, "Failed to retrieve users", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Get all user", users)
}

// GetUserByID handles GET /users/v1/{id}.
func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "GetUserByID"))

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		l.WarnContext(r.Context(), "Failed to retrieve user", slog.Any("error", err))
		status := http.StatusInternalServerError
		if errors.Is(err, types.ErrNotFound) {
			status = http.StatusNotFound
		}
		api.EnvelopeError(w, r, status, "Failed to retrieve user", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "User successfully retrieved.", user)
}

// UpdateUser handles PUT /users/v1/update. The target user is taken from the
// JWT claims attached by the authentication middleware, never from the body.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "UpdateUser"))

	rawID, ok := api.GetUserIDFromContext(r.Context())
	if !ok || rawID == "" {
		l.ErrorContext(r.Context(), "User id not found in JWT token")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var params types.UpdateUserParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "User updated failed", err)
		return
	}

	result, err := h.service.UpdateUser(r.Context(), userID, params)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to update user", slog.Any("error", err))
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, types.ErrBadRequest):
			status = http.StatusBadRequest
		case errors.Is(err, types.ErrNotFound):
			status = http.StatusNotFound
		}
		api.EnvelopeError(w, r, status, "User updated failed", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "User updated successfully", result)
}
