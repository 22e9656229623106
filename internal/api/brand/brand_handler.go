package brand

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oselz/watch-catalog-api/internal/api"
	"github.com/oselz/watch-catalog-api/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service BrandService
}

func NewBrandHandler(service BrandService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// CreateBrand handles POST /brands/v1.
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "CreateBrand"))

	var req types.CreateBrandRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Failed to create brand", err)
		return
	}

	brand, err := h.service.CreateBrand(r.Context(), req)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to create brand", slog.Any("error", err))
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to create brand", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusCreated, "Brand created successfully", brand)
}

// GetBrands handles GET /brands/v1.
func (h *Handler) GetBrands(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "GetBrands"))

	page, limit := api.PaginationParams(r)
	result, err := h.service.GetBrands(r.Context(), page, limit)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to retrieve brands", slog.Any("error", err))
		api.EnvelopeError(w, r, http.StatusInternalServerError, "Failed to retrieve brands", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Brands successfully retrieved.", result)
}

// GetBrandByID handles GET /brands/v1/{id}.
func (h *Handler) GetBrandByID(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "GetBrandByID"))

	brandID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Invalid brand ID", err)
		return
	}

	brand, err := h.service.GetBrandByID(r.Context(), brandID)
	if err != nil {
		l.WarnContext(r.Context(), "Failed to retrieve brand", slog.Any("error", err))
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to retrieve brand", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Brand successfully retrieved.", brand)
}

// UpdateBrand handles PUT /brands/v1/{id}.
func (h *Handler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "UpdateBrand"))

	brandID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Invalid brand ID", err)
		return
	}

	var params types.UpdateBrandParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Failed to update brand", err)
		return
	}

	brand, err := h.service.UpdateBrand(r.Context(), brandID, params)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to update brand", slog.Any("error", err))
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to update brand", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Brand updated successfully", brand)
}
