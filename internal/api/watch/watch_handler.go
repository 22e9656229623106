package watch

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/oselz/watch-catalog-api/internal/api"
	"github.com/oselz/watch-catalog-api/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service WatchService
}

func NewWatchHandler(service WatchService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// CreateWatch handles POST /watches/v1.
func (h *Handler) CreateWatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WatchHandler").Start(r.Context(), "CreateWatch")
	defer span.End()
	l := h.logger.With(slog.String("method", "CreateWatch"))

	var req types.CreateWatchRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		api.EnvelopeError(w, r, http.StatusBadRequest, "Failed to create watch", err)
		return
	}
	span.SetAttributes(attribute.String("watch.reference_number", req.ReferenceNumber))

	watch, err := h.service.CreateWatch(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create watch", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create watch")
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to create watch", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusCreated, "Watch created successfully", watch)
}

// watchFilterFromQuery reads the optional list predicates from the URL.
func watchFilterFromQuery(r *http.Request) types.WatchFilter {
	q := r.URL.Query()
	filter := types.WatchFilter{
		Name:            q.Get("name"),
		Brand:           q.Get("brand"),
		Country:         q.Get("country"),
		ReferenceNumber: q.Get("referenceNumber"),
	}
	if v := q.Get("priceMin"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.PriceMin = &n
		}
	}
	if v := q.Get("priceMax"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.PriceMax = &n
		}
	}
	filter.Page, filter.Limit = api.PaginationParams(r)
	return filter
}

// GetWatches handles GET /watches/v1 with optional filter query params.
func (h *Handler) GetWatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WatchHandler").Start(r.Context(), "GetWatches")
	defer span.End()
	l := h.logger.With(slog.String("method", "GetWatches"))

	filter := watchFilterFromQuery(r)
	result, err := h.service.GetWatches(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to retrieve watches", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve watches")
		api.EnvelopeError(w, r, http.StatusInternalServerError, "Failed to retrieve watches", err)
		return
	}
	span.SetAttributes(attribute.Int("watches.total", result.Meta.Total))

	api.SuccessResponse(w, r, http.StatusOK, "Watches successfully retrieved.", result)
}

// SearchWatches handles GET /watches/v1/search?q=... returning at most ten
// matches across name, brand name and reference number.
func (h *Handler) SearchWatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WatchHandler").Start(r.Context(), "SearchWatches")
	defer span.End()
	l := h.logger.With(slog.String("method", "SearchWatches"))

	query := r.URL.Query().Get("q")
	span.SetAttributes(attribute.String("search.query", query))

	watches, err := h.service.SearchWatches(ctx, query)
	if err != nil {
		l.WarnContext(ctx, "Failed to search watches", slog.Any("error", err))
		span.RecordError(err)
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to search watches", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Watches successfully retrieved.", watches)
}

// GetWatchByID handles GET /watches/v1/{id}.
func (h *Handler) GetWatchByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WatchHandler").Start(r.Context(), "GetWatchByID")
	defer span.End()
	l := h.logger.With(slog.String("method", "GetWatchByID"))

	watchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Invalid watch ID", err)
		return
	}
	span.SetAttributes(attribute.String("watch.id", watchID.String()))

	watch, err := h.service.GetWatchByID(ctx, watchID)
	if err != nil {
		l.WarnContext(ctx, "Failed to retrieve watch", slog.Any("error", err))
		span.RecordError(err)
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to retrieve watch", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Watch successfully retrieved.", watch)
}

// UpdateWatch handles PUT /watches/v1/{id}.
func (h *Handler) UpdateWatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WatchHandler").Start(r.Context(), "UpdateWatch")
	defer span.End()
	l := h.logger.With(slog.String("method", "UpdateWatch"))

	watchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.EnvelopeError(w, r, http.StatusBadRequest, "Invalid watch ID", err)
		return
	}
	span.SetAttributes(attribute.String("watch.id", watchID.String()))

	var params types.UpdateWatchParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		span.RecordError(err)
		api.EnvelopeError(w, r, http.StatusBadRequest, "Failed to update watch", err)
		return
	}

	watch, err := h.service.UpdateWatch(ctx, watchID, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to update watch", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update watch")
		api.EnvelopeError(w, r, api.StatusFromError(err), "Failed to update watch", err)
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, "Watch updated successfully", watch)
}
