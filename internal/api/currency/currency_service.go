package currency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/oselz/watch-catalog-api/internal/types"
)

var _ CurrencyService = (*CurrencyServiceImpl)(nil)

// CurrencyService orchestrates currency reads and writes.
type CurrencyService interface {
	CreateCurrency(ctx context.Context, req types.CreateCurrencyRequest) (*types.Currency, error)
	GetCurrencies(ctx context.Context, page, limit int) (*types.Paginated[types.CurrencyRow], error)
	GetCurrencyByID(ctx context.Context, currencyID uuid.UUID) (*types.CurrencyRow, error)
	// UpdateCurrency applies the patch and returns the refreshed row.
	UpdateCurrency(ctx context.Context, currencyID uuid.UUID, params types.UpdateCurrencyParams) (*types.CurrencyRow, error)
}

type CurrencyServiceImpl struct {
	logger *slog.Logger
	repo   CurrencyRepo
}

func NewCurrencyService(repo CurrencyRepo, logger *slog.Logger) *CurrencyServiceImpl {
	return &CurrencyServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *CurrencyServiceImpl) CreateCurrency(ctx context.Context, req types.CreateCurrencyRequest) (*types.Currency, error) {
	l := s.logger.With(slog.String("method", "CreateCurrency"), slog.String("code", req.Code))

	if req.Name == "" || req.Code == "" {
		return nil, fmt.Errorf("name and code are required: %w", types.ErrBadRequest)
	}

	c, err := s.repo.CreateCurrency(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create currency", slog.Any("error", err))
		return nil, err
	}
	return c, nil
}

func (s *CurrencyServiceImpl) GetCurrencies(ctx context.Context, page, limit int) (*types.Paginated[types.CurrencyRow], error) {
	currencies, total, err := s.repo.GetCurrencies(ctx, page, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list currencies", slog.Any("error", err))
		return nil, err
	}
	if currencies == nil {
		currencies = []types.CurrencyRow{}
	}
	return &types.Paginated[types.CurrencyRow]{
		Data: currencies,
		Meta: types.PageMeta{Total: total, Page: page, Limit: limit},
	}, nil
}

func (s *CurrencyServiceImpl) GetCurrencyByID(ctx context.Context, currencyID uuid.UUID) (*types.CurrencyRow, error) {
	return s.repo.GetCurrencyByID(ctx, currencyID)
}

func (s *CurrencyServiceImpl) UpdateCurrency(ctx context.Context, currencyID uuid.UUID, params types.UpdateCurrencyParams) (*types.CurrencyRow, error) {
	l := s.logger.With(slog.String("method", "UpdateCurrency"), slog.String("currency_id", currencyID.String()))

	if params.Name == nil && params.Code == nil && params.Symbol == nil {
		return nil, fmt.Errorf("no fields to update: %w", types.ErrBadRequest)
	}

	if err := s.repo.UpdateCurrency(ctx, currencyID, params); err != nil {
		l.ErrorContext(ctx, "Failed to update currency", slog.Any("error", err))
		return nil, err
	}
	return s.repo.GetCurrencyByID(ctx, currencyID)
}
