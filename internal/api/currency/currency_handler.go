package currency

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
	service CurrencyService
}

func NewCurrencyHandler(service CurrencyService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// CreateCurrency handles POST /currencies/v1.
func (h *Handler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "CreateCurrency"))

	var req types.CreateCurrencyRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Failed to create currency", err)
		return
	}

	currency, err := h.service.CreateCurrency(r.Context(), req)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to create currency", slog.Any("error", err))
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to create currency", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusCreated, "Currency created successfully", currency)
}

// GetCurrencies handles GET /currencies/v1.
func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "GetCurrencies"))

	page, limit := api.PaginationParams(r)
	result, err := h.service.GetCurrencies(r.Context(), page, limit)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to retrieve currencies", slog.Any("error", err))
		api.EnvelopeError(w, r, http.StatusInternalServerError, "Failed to retrieve currencies", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Currencies successfully retrieved.", result)
}

// GetCurrencyByID handles GET /currencies/v1/{id}.
func (h *Handler) GetCurrencyByID(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "GetCurrencyByID"))

	currencyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Invalid currency ID", err)
		return
	}

	currency, err := h.service.GetCurrencyByID(r.Context(), currencyID)
	if err != nil {
		l.WarnContext(r.Context(), "Failed to retrieve currency", slog.Any("error", err))
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to retrieve currency", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Currency successfully retrieved.", currency)
}

// UpdateCurrency handles PUT /currencies/v1/{id}.
func (h *Handler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("method", "UpdateCurrency"))

	currencyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Invalid currency ID", err)
		return
	}

	var params types.UpdateCurrencyParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Failed to update currency", err)
		return
	}

	currency, err := h.service.UpdateCurrency(r.Context(), currencyID, params)
	if err != nil {
		l.ErrorContext(r.Context(), "Failed to update currency", slog.Any("error", err))
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to update currency", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Currency updated successfully", currency)
}
