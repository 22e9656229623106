package brand

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/oselz/watch-catalog-api/internal/types"
)

var _ BrandService = (*BrandServiceImpl)(nil)

// BrandService orchestrates brand reads and writes.
type BrandService interface {
	CreateBrand(ctx context.Context, req types.CreateBrandRequest) (*types.Brand, error)
	GetBrands(ctx context.Context, page, limit int) (*types.Paginated[types.BrandRow], error)
	GetBrandByID(ctx context.Context, brandID uuid.UUID) (*types.BrandRow, error)
	// UpdateBrand applies the patch and returns the refreshed row.
	UpdateBrand(ctx context.Context, brandID uuid.UUID, params types.UpdateBrandParams) (*types.BrandRow, error)
}

type BrandServiceImpl struct {
	logger *slog.Logger
	repo   BrandRepo
}

func NewBrandService(repo BrandRepo, logger *slog.Logger) *BrandServiceImpl {
	return &BrandServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *BrandServiceImpl) CreateBrand(ctx context.Context, req types.CreateBrandRequest) (*types.Brand, error) {
	l := s.logger.With(slog.String("method", "CreateBrand"), slog.String("name", req.Name))

	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", types.ErrBadRequest)
	}

	b, err := s.repo.CreateBrand(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create brand", slog.Any("error", err))
		return nil, err
	}
	return b, nil
}

func (s *BrandServiceImpl) GetBrands(ctx context.Context, page, limit int) (*types.Paginated[types.BrandRow], error) {
	brands, total, err := s.repo.GetBrands(ctx, page, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list brands", slog.Any("error", err))
		return nil, err
	}
	if brands == nil {
		brands = []types.BrandRow{}
	}
	return &types.Paginated[types.BrandRow]{
		Data: brands,
		Meta: types.PageMeta{Total: total, Page: page, Limit: limit},
	}, nil
}

func (s *BrandServiceImpl) GetBrandByID(ctx context.Context, brandID uuid.UUID) (*types.BrandRow, error) {
	return s.repo.GetBrandByID(ctx, brandID)
}

func (s *BrandServiceImpl) UpdateBrand(ctx context.Context, brandID uuid.UUID, params types.UpdateBrandParams) (*types.BrandRow, error) {
	l := s.logger.With(slog.String("method", "UpdateBrand"), slog.String("brand_id", brandID.String()))

	if params.Name == nil && params.CountryID == nil {
		return nil, fmt.Errorf("no fields to update: %w", types.ErrBadRequest)
	}

	if err := s.repo.UpdateBrand(ctx, brandID, params); err != nil {
		l.ErrorContext(ctx, "Failed to update brand", slog.Any("error", err))
		return nil, err
	}
	return s.repo.GetBrandByID(ctx, brandID)
}
