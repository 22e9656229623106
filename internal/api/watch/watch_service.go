package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oselz/watch-catalog-api/internal/types"
)

var _ WatchService = (*WatchServiceImpl)(nil)

// WatchService orchestrates watch reads and writes. Release dates arrive as
// YYYY-MM-DD strings and are parsed here, before the repository.
type WatchService interface {
	CreateWatch(ctx context.Context, req types.CreateWatchRequest) (*types.Watch, error)
	GetWatches(ctx context.Context, filter types.WatchFilter) (*types.Paginated[types.WatchRow], error)
	GetWatchByID(ctx context.Context, watchID uuid.UUID) (*types.WatchRow, error)
	// UpdateWatch applies the patch and returns the refreshed row.
	UpdateWatch(ctx context.Context, watchID uuid.UUID, params types.UpdateWatchParams) (*types.WatchRow, error)
	SearchWatches(ctx context.Context, query string) ([]types.WatchRow, error)
}

type WatchServiceImpl struct {
	logger *slog.Logger
	repo   WatchRepo
}

func NewWatchService(repo WatchRepo, logger *slog.Logger) *WatchServiceImpl {
	return &WatchServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

const releaseDateLayout = "2006-01-02"

func (s *WatchServiceImpl) CreateWatch(ctx context.Context, req types.CreateWatchRequest) (*types.Watch, error) {
	l := s.logger.With(slog.String("method", "CreateWatch"), slog.String("reference_number", req.ReferenceNumber))

	if req.Name == "" || req.ReferenceNumber == "" {
		return nil, fmt.Errorf("name and referenceNumber are required: %w", types.ErrBadRequest)
	}
	if req.RetailPrice < 0 {
		return nil, fmt.Errorf("retailPrice must not be negative: %w", types.ErrBadRequest)
	}

	releaseDate, err := time.Parse(releaseDateLayout, req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("releaseDate must be YYYY-MM-DD: %w", types.ErrBadRequest)
	}

	w, err := s.repo.CreateWatch(ctx, req, releaseDate)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create watch", slog.Any("error", err))
		return nil, err
	}
	return w, nil
}

func (s *WatchServiceImpl) GetWatches(ctx context.Context, filter types.WatchFilter) (*types.Paginated[types.WatchRow], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 25
	}

	watches, total, err := s.repo.GetWatches(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list watches", slog.Any("error", err))
		return nil, err
	}
	if watches == nil {
		watches = []types.WatchRow{}
	}
	return &types.Paginated[types.WatchRow]{
		Data: watches,
		Meta: types.PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit},
	}, nil
}

func (s *WatchServiceImpl) GetWatchByID(ctx context.Context, watchID uuid.UUID) (*types.WatchRow, error) {
	return s.repo.GetWatchByID(ctx, watchID)
}

func (s *WatchServiceImpl) UpdateWatch(ctx context.Context, watchID uuid.UUID, params types.UpdateWatchParams) (*types.WatchRow, error) {
	l := s.logger.With(slog.String("method", "UpdateWatch"), slog.String("watch_id", watchID.String()))

	var releaseDate *time.Time
	if params.ReleaseDate != nil {
		parsed, err := time.Parse(releaseDateLayout, *params.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("releaseDate must be YYYY-MM-DD: %w", types.ErrBadRequest)
		}
		releaseDate = &parsed
	}

	if err := s.repo.UpdateWatch(ctx, watchID, params, releaseDate); err != nil {
		l.ErrorContext(ctx, "Failed to update watch", slog.Any("error", err))
		return nil, err
	}
	return s.repo.GetWatchByID(ctx, watchID)
}

func (s *WatchServiceImpl) SearchWatches(ctx context.Context, query string) ([]types.WatchRow, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", types.ErrBadRequest)
	}

	watches, err := s.repo.SearchWatches(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to search watches", slog.Any("error", err))
		return nil, err
	}
	if watches == nil {
		watches = []types.WatchRow{}
	}
	return watches, nil
}
