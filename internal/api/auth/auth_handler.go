package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oselz/watch-catalog-api/app/observability/metrics"
	"github.com/oselz/watch-catalog-api/internal/api"
	"github.com/oselz/watch-catalog-api/internal/types"
)

// CredentialStore is the slice of the user repository the handler needs for
// its duplicate-email pre-check on registration.
type CredentialStore interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// Handler exposes the auth endpoints. Unlike the catalog handlers it answers
// errors as bare HTTP error JSON, never the success envelope.
type Handler struct {
	logger      *slog.Logger
	authService AuthService
	users       CredentialStore
}

func NewAuthHandler(authService AuthService, users CredentialStore, logger *slog.Logger) *Handler {
	return &Handler{
		logger:      logger,
		authService: authService,
		users:       users,
	}
}

// Register handles POST /auth/v1/register. The duplicate-email check happens
// here, before the service is ever called; the service itself does not
// re-check.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Register"))

	var req types.RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Email must be a valid email address")
		return
	}

	existing, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		l.ErrorContext(r.Context(), "Duplicate email check failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}
	if existing != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Email already exists")
		return
	}

	token, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		l.ErrorContext(r.Context(), "Registration failed", slog.Any("error", err), slog.String("email", req.Email))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	metrics.Get().RegisterRequestsTotal.Add(r.Context(), 1)
	api.WriteJSONResponse(w, r, http.StatusCreated, token)
}

// Login handles POST /auth/v1/login. It gates on ValidateUser first and only
// then calls Login, so the lookup and comparison run twice. The gate rejects
// with a generic 401 before the token path is ever reached.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Login"))

	var req types.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.authService.ValidateUser(r.Context(), req.Email, req.Password)
	if err != nil || user == nil {
		l.WarnContext(r.Context(), "Credential validation failed", slog.Any("error", err), slog.String("email", req.Email))
		metrics.Get().AuthFailuresTotal.Add(r.Context(), 1)
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		l.ErrorContext(r.Context(), "Login failed", slog.Any("error", err), slog.String("email", req.Email))
		if errors.Is(err, types.ErrUnauthenticated) {
			metrics.Get().AuthFailuresTotal.Add(r.Context(), 1)
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Authentication failed")
		return
	}

	metrics.Get().LoginRequestsTotal.Add(r.Context(), 1)
	api.WriteJSONResponse(w, r, http.StatusOK, token)
}

// GetProfile handles GET /auth/v1/profile, protected by the Authenticate
// middleware. The subject email comes from the request context.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "GetProfile"))

	email, ok := api.GetUserEmailFromContext(r.Context())
	if !ok || email == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization token is missing or invalid.")
		return
	}

	user, err := h.authService.GetUserByEmail(r.Context(), email)
	if err != nil {
		l.WarnContext(r.Context(), "Profile lookup failed", slog.Any("error", err), slog.String("email", email))
		api.ErrorResponse(w, r, http.StatusUnauthorized, "User not found.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, user)
}
