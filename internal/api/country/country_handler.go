package country

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
	service CountryService
}

func NewCountryHandler(service CountryService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// CreateCountry handles POST /countries/v1.
func (h *Handler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "CreateCountry"))

	var req types.CreateCountryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Failed to create country", err)
		return
	}

	country, err := h.service.CreateCountry(r.Context(), req)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to create country", slog.Any("error", err))
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, types.ErrBadRequest):
			status = http.StatusBadRequest
		case errors.Is(err, types.ErrConflict):
			status = http.StatusConflict
		}
		api.EnvelopeError(w, r, status, "Failed to create country", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusCreated, "Country created successfully", country)
}

// GetCountries handles GET /countries/v1 with page/limit query params.
func (h *Handler) GetCountries(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "GetCountries"))

	page, limit := api.PaginationParams(r)
	result, err := h.service.GetCountries(r.Context(), page, limit)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to retrieve countries", slog.Any("error", err))
		api.EnvelopeError(w, r, http.StatusInternalServerError, "Failed to retrieve countries", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Countries successfully retrieved.", result)
}

// GetCountryByID handles GET /countries/v1/{id}.
func (h *Handler) GetCountryByID(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "GetCountryByID"))

	countryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Invalid country ID", err)
		return
	}

	country, err := h.service.GetCountryByID(r.Context(), countryID)
	if err != nil {
		l.WarnContext(r.Context(), "Failed to retrieve country", slog.Any("error", err))
		status := http.StatusInternalServerError
		if errors.Is(err, types.ErrNotFound) {
			status = http.StatusNotFound
		}
		api.EnvelopeError(w, r, status, "Failed to retrieve country", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Country successfully retrieved.", country)
}
