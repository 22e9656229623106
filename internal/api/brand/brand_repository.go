package brand

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oselz/watch-catalog-api/internal/types"
)

var _ BrandRepo = (*PostgresBrandRepo)(nil)

// BrandRepo defines the contract for brand persistence. Brands are
// soft-deleted; listing excludes deleted rows, lookup by id does not.
type BrandRepo interface {
	CreateBrand(ctx context.Context, req types.CreateBrandRequest) (*types.Brand, error)

	// GetBrands lists non-deleted brands with their origin country.
	GetBrands(ctx context.Context, page, limit int) ([]types.BrandRow, int, error)

	// GetBrandByID returns types.ErrNotFound on miss.
	GetBrandByID(ctx context.Context, brandID uuid.UUID) (*types.BrandRow, error)

	// UpdateBrand applies the provided fields. Returns types.ErrNotFound when
	// no row matched.
	UpdateBrand(ctx context.Context, brandID uuid.UUID, params types.UpdateBrandParams) error
}

type PostgresBrandRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresBrandRepo(pgxpool *pgxpool.Pool, logger *slog.Logger) *PostgresBrandRepo {
	return &PostgresBrandRepo{
		logger: logger,
		pgpool: pgxpool,
	}
}

func (r *PostgresBrandRepo) CreateBrand(ctx context.Context, req types.CreateBrandRequest) (*types.Brand, error) {
	var b types.Brand
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO brand (name, country_id)
         VALUES ($1, $2)
         RETURNING id, name, country_id, created_at, updated_at`,
		req.Name, req.CountryID).Scan(&b.ID, &b.Name, &b.CountryID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, fmt.Errorf("brand %s already exists: %w", req.Name, types.ErrConflict)
			case "23503":
				return nil, fmt.Errorf("country %v does not exist: %w", req.CountryID, types.ErrBadRequest)
			}
		}
		return nil, fmt.Errorf("failed to insert brand: %w", err)
	}
	return &b, nil
}

const brandRowSelect = `
    SELECT b.id, b.name,
           co.id, co.name, co.code,
           b.created_at, b.updated_at, b.deleted_at
    FROM brand b
    LEFT JOIN country co ON co.id = b.country_id`

func scanBrandRow(row pgx.Row, b *types.BrandRow) error {
	return row.Scan(
		&b.ID, &b.Name,
		&b.OriginCountryID, &b.OriginCountry, &b.OriginCountryCode,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt)
}

func (r *PostgresBrandRepo) GetBrands(ctx context.Context, page, limit int) ([]types.BrandRow, int, error) {
	var total int
	if err := r.pgpool.QueryRow(ctx, `SELECT count(*) FROM brand WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	rows, err := r.pgpool.Query(ctx,
		brandRowSelect+` WHERE b.deleted_at IS NULL ORDER BY b.name ASC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	var brands []types.BrandRow
	for rows.Next() {
		var b types.BrandRow
		if err := scanBrandRow(rows, &b); err != nil {
			return nil, 0, fmt.Errorf("failed to scan brand row: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed iterating brand rows: %w", err)
	}
	return brands, total, nil
}

func (r *PostgresBrandRepo) GetBrandByID(ctx context.Context, brandID uuid.UUID) (*types.BrandRow, error) {
	var b types.BrandRow
	err := scanBrandRow(r.pgpool.QueryRow(ctx, brandRowSelect+` WHERE b.id = $1`, brandID), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("brand %s: %w", brandID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query brand by id: %w", err)
	}
	return &b, nil
}

func (r *PostgresBrandRepo) UpdateBrand(ctx context.Context, brandID uuid.UUID, params types.UpdateBrandParams) error {
	setClauses := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	argPos := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}
	if params.CountryID != nil {
		setClauses = append(setClauses, fmt.Sprintf("country_id = $%d", argPos))
		args = append(args, *params.CountryID)
		argPos++
	}
	if len(setClauses) == 0 {
		return fmt.Errorf("no valid fields provided for update: %w", types.ErrBadRequest)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++
	args = append(args, brandID)

	query := fmt.Sprintf("UPDATE brand SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argPos)

	tag, err := r.pgpool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("country does not exist: %w", types.ErrBadRequest)
		}
		return fmt.Errorf("failed to update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("brand %s: %w", brandID, types.ErrNotFound)
	}
	return nil
}
