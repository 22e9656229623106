package watch

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
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/oselz/watch-catalog-api/app/observability/metrics"
	"github.com/oselz/watch-catalog-api/internal/types"
)

// Querier is the slice of pgxpool.Pool the repository uses. Satisfied by
// *pgxpool.Pool in production and by pgxmock in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ WatchRepo = (*PostgresWatchRepo)(nil)

// WatchRepo defines the contract for watch persistence.
type WatchRepo interface {
	CreateWatch(ctx context.Context, req types.CreateWatchRequest, releaseDate time.Time) (*types.Watch, error)

	// GetWatches lists watches joined with brand, currency and country,
	// applying the optional filter predicates.
	GetWatches(ctx context.Context, filter types.WatchFilter) ([]types.WatchRow, int, error)

	// GetWatchByID returns types.ErrNotFound on miss.
	GetWatchByID(ctx context.Context, watchID uuid.UUID) (*types.WatchRow, error)

	// UpdateWatch applies the provided fields. Returns types.ErrNotFound when
	// no row matched.
	UpdateWatch(ctx context.Context, watchID uuid.UUID, params types.UpdateWatchParams, releaseDate *time.Time) error

	// SearchWatches matches the query against name, brand name and reference
	// number, capped at ten rows.
	SearchWatches(ctx context.Context, query string) ([]types.WatchRow, error)
}

type PostgresWatchRepo struct {
	logger *slog.Logger
	db     Querier
}

func NewPostgresWatchRepo(db Querier, logger *slog.Logger) *PostgresWatchRepo {
	return &PostgresWatchRepo{
		logger: logger,
		db:     db,
	}
}

// observe records the query duration histogram for the named repository op.
func observe(ctx context.Context, op string, start time.Time) {
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("operation", op)))
}

func (r *PostgresWatchRepo) CreateWatch(ctx context.Context, req types.CreateWatchRequest, releaseDate time.Time) (*types.Watch, error) {
	defer observe(ctx, "CreateWatch", time.Now())

	var w types.Watch
	err := r.db.QueryRow(ctx,
		`INSERT INTO watch (name, brand_id, reference_number, retail_price, currency_id, release_date, country_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, name, brand_id, reference_number, retail_price, currency_id, release_date, country_id, created_at, updated_at`,
		req.Name, req.BrandID, req.ReferenceNumber, req.RetailPrice, req.CurrencyID, releaseDate, req.CountryID).Scan(
		&w.ID, &w.Name, &w.BrandID, &w.ReferenceNumber, &w.RetailPrice,
		&w.CurrencyID, &w.ReleaseDate, &w.CountryID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, fmt.Errorf("reference number %s already exists: %w", req.ReferenceNumber, types.ErrConflict)
			case "23503":
				return nil, fmt.Errorf("related record does not exist: %w", types.ErrBadRequest)
			}
		}
		return nil, fmt.Errorf("failed to insert watch: %w", err)
	}
	return &w, nil
}

const watchRowSelect = `
    SELECT w.id, w.name, w.reference_number, w.retail_price, w.release_date,
           b.id, b.name,
           cu.id, cu.name,
           co.id, co.name,
           w.created_at, w.updated_at
    FROM watch w
    LEFT JOIN brand b ON b.id = w.brand_id
    LEFT JOIN currency cu ON cu.id = w.currency_id
    LEFT JOIN country co ON co.id = w.country_id`

func scanWatchRow(row pgx.Row, w *types.WatchRow) error {
	return row.Scan(
		&w.ID, &w.Name, &w.ReferenceNumber, &w.RetailPrice, &w.ReleaseDate,
		&w.BrandID, &w.BrandName,
		&w.CurrencyID, &w.CurrencyName,
		&w.CountryID, &w.CountryName,
		&w.CreatedAt, &w.UpdatedAt)
}

// buildWatchFilter turns the optional predicates into a WHERE clause and its
// positional args. An empty filter yields an empty clause.
func buildWatchFilter(filter types.WatchFilter) (string, []any) {
	var conditions []string
	var args []any
	argPos := 1

	add := func(cond string, val any) {
		conditions = append(conditions, fmt.Sprintf(cond, argPos))
		args = append(args, val)
		argPos++
	}

	if filter.Name != "" {
		add("w.name ILIKE $%d", "%"+filter.Name+"%")
	}
	if filter.Brand != "" {
		add("b.name ILIKE $%d", "%"+filter.Brand+"%")
	}
	if filter.Country != "" {
		add("co.name ILIKE $%d", "%"+filter.Country+"%")
	}
	if filter.ReferenceNumber != "" {
		add("w.reference_number ILIKE $%d", "%"+filter.ReferenceNumber+"%")
	}
	if filter.PriceMin != nil {
		add("w.retail_price >= $%d", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		add("w.retail_price <= $%d", *filter.PriceMax)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PostgresWatchRepo) GetWatches(ctx context.Context, filter types.WatchFilter) ([]types.WatchRow, int, error) {
	defer observe(ctx, "GetWatches", time.Now())

	where, args := buildWatchFilter(filter)

	countQuery := `SELECT count(*)
    FROM watch w
    LEFT JOIN brand b ON b.id = w.brand_id
    LEFT JOIN currency cu ON cu.id = w.currency_id
    LEFT JOIN country co ON co.id = w.country_id` + where

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count watches: %w", err)
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}

	listQuery := fmt.Sprintf("%s%s ORDER BY w.name ASC LIMIT $%d OFFSET $%d",
		watchRowSelect, where, len(args)+1, len(args)+2)
	listArgs := append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query watches: %w", err)
	}
	defer rows.Close()

	var watches []types.WatchRow
	for rows.Next() {
		var w types.WatchRow
		if err := scanWatchRow(rows, &w); err != nil {
			return nil, 0, fmt.Errorf("failed to scan watch row: %w", err)
		}
		watches = append(watches, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed iterating watch rows: %w", err)
	}
	return watches, total, nil
}

func (r *PostgresWatchRepo) GetWatchByID(ctx context.Context, watchID uuid.UUID) (*types.WatchRow, error) {
	defer observe(ctx, "GetWatchByID", time.Now())

	var w types.WatchRow
	err := scanWatchRow(r.db.QueryRow(ctx, watchRowSelect+` WHERE w.id = $1`, watchID), &w)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("watch %s: %w", watchID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query watch by id: %w", err)
	}
	return &w, nil
}

func (r *PostgresWatchRepo) UpdateWatch(ctx context.Context, watchID uuid.UUID, params types.UpdateWatchParams, releaseDate *time.Time) error {
	defer observe(ctx, "UpdateWatch", time.Now())

	setClauses := make([]string, 0, 8)
	args := make([]any, 0, 9)
	argPos := 1

	set := func(column string, val any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, val)
		argPos++
	}

	if params.Name != nil {
		set("name", *params.Name)
	}
	if params.ReferenceNumber != nil {
		set("reference_number", *params.ReferenceNumber)
	}
	if params.RetailPrice != nil {
		set("retail_price", *params.RetailPrice)
	}
	if params.CurrencyID != nil {
		set("currency_id", *params.CurrencyID)
	}
	if releaseDate != nil {
		set("release_date", *releaseDate)
	}
	if params.CountryID != nil {
		set("country_id", *params.CountryID)
	}
	if params.BrandID != nil {
		set("brand_id", *params.BrandID)
	}
	if len(setClauses) == 0 {
		return fmt.Errorf("no valid fields provided for update: %w", types.ErrBadRequest)
	}

	set("updated_at", time.Now())
	args = append(args, watchID)

	query := fmt.Sprintf("UPDATE watch SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argPos)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("reference number already exists: %w", types.ErrConflict)
			case "23503":
				return fmt.Errorf("related record does not exist: %w", types.ErrBadRequest)
			}
		}
		return fmt.Errorf("failed to update watch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("watch %s: %w", watchID, types.ErrNotFound)
	}
	return nil
}

func (r *PostgresWatchRepo) SearchWatches(ctx context.Context, query string) ([]types.WatchRow, error) {
	defer observe(ctx, "SearchWatches", time.Now())

	pattern := "%" + query + "%"
	rows, err := r.db.Query(ctx,
		watchRowSelect+`
         WHERE w.name ILIKE $1 OR b.name ILIKE $1 OR w.reference_number ILIKE $1
         ORDER BY w.name ASC LIMIT 10`,
		pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search watches: %w", err)
	}
	defer rows.Close()

	var watches []types.WatchRow
	for rows.Next() {
		var w types.WatchRow
		if err := scanWatchRow(rows, &w); err != nil {
			return nil, fmt.Errorf("failed to scan watch row: %w", err)
		}
		watches = append(watches, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating watch rows: %w", err)
	}
	return watches, nil
}
