package country

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oselz/watch-catalog-api/internal/types"
)

var _ CountryRepo = (*PostgresCountryRepo)(nil)

// CountryRepo defines the contract for country persistence.
type CountryRepo interface {
	// CreateCountry persists a new country. Returns types.ErrConflict when a
	// country with the same name and code already exists.
	CreateCountry(ctx context.Context, name, code string) (*types.Country, error)

	// GetCountries lists countries ordered by name, with the total row count
	// for pagination.
	GetCountries(ctx context.Context, page, limit int) ([]types.Country, int, error)

	// GetCountryByID returns types.ErrNotFound on miss.
	GetCountryByID(ctx context.Context, countryID uuid.UUID) (*types.Country, error)
}

type PostgresCountryRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresCountryRepo(pgxpool *pgxpool.Pool, logger *slog.Logger) *PostgresCountryRepo {
	return &PostgresCountryRepo{
		logger: logger,
		pgpool: pgxpool,
	}
}

func (r *PostgresCountryRepo) CreateCountry(ctx context.Context, name, code string) (*types.Country, error) {
	var c types.Country
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO country (name, code)
         VALUES ($1, $2)
         RETURNING id, name, code, created_at, updated_at`,
		name, code).Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("country %s already exists: %w", name, types.ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert country: %w", err)
	}
	return &c, nil
}

func (r *PostgresCountryRepo) GetCountries(ctx context.Context, page, limit int) ([]types.Country, int, error) {
	var total int
	if err := r.pgpool.QueryRow(ctx, `SELECT count(*) FROM country`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count countries: %w", err)
	}

	rows, err := r.pgpool.Query(ctx,
		`SELECT id, name, code, created_at, updated_at
         FROM country ORDER BY name ASC
         LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var countries []types.Country
	for rows.Next() {
		var c types.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan country row: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed iterating country rows: %w", err)
	}
	return countries, total, nil
}

func (r *PostgresCountryRepo) GetCountryByID(ctx context.Context, countryID uuid.UUID) (*types.Country, error) {
	var c types.Country
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, code, created_at, updated_at
         FROM country WHERE id = $1`,
		countryID).Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("country %s: %w", countryID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query country by id: %w", err)
	}
	return &c, nil
}
