package country

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/oselz/watch-catalog-api/internal/types"
)

var _ CountryService = (*CountryServiceImpl)(nil)

// CountryService orchestrates country reads and writes.
type CountryService interface {
	CreateCountry(ctx context.Context, req types.CreateCountryRequest) (*types.Country, error)
	GetCountries(ctx context.Context, page, limit int) (*types.Paginated[types.Country], error)
	GetCountryByID(ctx context.Context, countryID uuid.UUID) (*types.Country, error)
}

// CountryServiceImpl serves GetCountryByID through a short-lived in-process
// cache. Countries change rarely, so the 5 minute TTL is safe.
type CountryServiceImpl struct {
	logger *slog.Logger
	repo   CountryRepo
	cache  *cache.Cache
}

func NewCountryService(repo CountryRepo, logger *slog.Logger) *CountryServiceImpl {
	return &CountryServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *CountryServiceImpl) CreateCountry(ctx context.Context, req types.CreateCountryRequest) (*types.Country, error) {
	l := s.logger.With(slog.String("method", "CreateCountry"), slog.String("name", req.Name))

	if req.Name == "" || req.Code == "" {
		return nil, fmt.Errorf("name and code are required: %w", types.ErrBadRequest)
	}

	c, err := s.repo.CreateCountry(ctx, req.Name, req.Code)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create country", slog.Any("error", err))
		return nil, err
	}
	return c, nil
}

func (s *CountryServiceImpl) GetCountries(ctx context.Context, page, limit int) (*types.Paginated[types.Country], error) {
	countries, total, err := s.repo.GetCountries(ctx, page, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list countries", slog.Any("error", err))
		return nil, err
	}
	if countries == nil {
		countries = []types.Country{}
	}
	return &types.Paginated[types.Country]{
		Data: countries,
		Meta: types.PageMeta{Total: total, Page: page, Limit: limit},
	}, nil
}

func (s *CountryServiceImpl) GetCountryByID(ctx context.Context, countryID uuid.UUID) (*types.Country, error) {
	cacheKey := "country:" + countryID.String()
	if cached, found := s.cache.Get(cacheKey); found {
		if c, ok := cached.(*types.Country); ok {
			s.logger.DebugContext(ctx, "Country cache hit", slog.String("country_id", countryID.String()))
			return c, nil
		}
	}

	c, err := s.repo.GetCountryByID(ctx, countryID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, c, cache.DefaultExpiration)
	return c, nil
}
