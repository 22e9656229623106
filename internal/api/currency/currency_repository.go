package currency

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

var _ CurrencyRepo = (*PostgresCurrencyRepo)(nil)

// CurrencyRepo defines the contract for currency persistence. Read paths
// join the related country so callers get the flattened row.
type CurrencyRepo interface {
	// CreateCurrency persists a new currency. Returns types.ErrConflict when
	// the ISO code is taken.
	CreateCurrency(ctx context.Context, req types.CreateCurrencyRequest) (*types.Currency, error)

	// GetCurrencies lists currencies with their country, ordered by code.
	GetCurrencies(ctx context.Context, page, limit int) ([]types.CurrencyRow, int, error)

	// GetCurrencyByID returns types.ErrNotFound on miss.
	GetCurrencyByID(ctx context.Context, currencyID uuid.UUID) (*types.CurrencyRow, error)

	// UpdateCurrency applies the provided fields. Returns types.ErrNotFound
	// when no row matched.
	UpdateCurrency(ctx context.Context, currencyID uuid.UUID, params types.UpdateCurrencyParams) error
}

type PostgresCurrencyRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresCurrencyRepo(pgxpool *pgxpool.Pool, logger *slog.Logger) *PostgresCurrencyRepo {
	return &PostgresCurrencyRepo{
		logger: logger,
		pgpool: pgxpool,
	}
}

func (r *PostgresCurrencyRepo) CreateCurrency(ctx context.Context, req types.CreateCurrencyRequest) (*types.Currency, error) {
	var c types.Currency
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO currency (name, code, symbol, country_id)
         VALUES ($1, $2, $3, $4)
         RETURNING id, name, code, symbol, country_id, created_at, updated_at`,
		req.Name, req.Code, req.Symbol, req.CountryID).Scan(
		&c.ID, &c.Name, &c.Code, &c.Symbol, &c.CountryID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, fmt.Errorf("currency %s already exists: %w", req.Code, types.ErrConflict)
			case "23503":
				return nil, fmt.Errorf("country %v does not exist: %w", req.CountryID, types.ErrBadRequest)
			}
		}
		return nil, fmt.Errorf("failed to insert currency: %w", err)
	}
	return &c, nil
}

const currencyRowSelect = `
    SELECT cu.id, cu.name, cu.code, cu.symbol,
           co.id, co.name, co.code,
           cu.created_at, cu.updated_at
    FROM currency cu
    LEFT JOIN country co ON co.id = cu.country_id`

func scanCurrencyRow(row pgx.Row, c *types.CurrencyRow) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Code, &c.Symbol,
		&c.CountryID, &c.CountryName, &c.CountryCode,
		&c.CreatedAt, &c.UpdatedAt)
}

func (r *PostgresCurrencyRepo) GetCurrencies(ctx context.Context, page, limit int) ([]types.CurrencyRow, int, error) {
	var total int
	if err := r.pgpool.QueryRow(ctx, `SELECT count(*) FROM currency`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count currencies: %w", err)
	}

	rows, err := r.pgpool.Query(ctx,
		currencyRowSelect+` ORDER BY cu.code ASC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	var currencies []types.CurrencyRow
	for rows.Next() {
		var c types.CurrencyRow
		if err := scanCurrencyRow(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("failed to scan currency row: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed iterating currency rows: %w", err)
	}
	return currencies, total, nil
}

func (r *PostgresCurrencyRepo) GetCurrencyByID(ctx context.Context, currencyID uuid.UUID) (*types.CurrencyRow, error) {
	var c types.CurrencyRow
	err := scanCurrencyRow(r.pgpool.QueryRow(ctx, currencyRowSelect+` WHERE cu.id = $1`, currencyID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("currency %s: %w", currencyID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query currency by id: %w", err)
	}
	return &c, nil
}

func (r *PostgresCurrencyRepo) UpdateCurrency(ctx context.Context, currencyID uuid.UUID, params types.UpdateCurrencyParams) error {
	setClauses := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	argPos := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}
	if params.Code != nil {
		setClauses = append(setClauses, fmt.Sprintf("code = $%d", argPos))
		args = append(args, *params.Code)
		argPos++
	}
	if params.Symbol != nil {
		setClauses = append(setClauses, fmt.Sprintf("symbol = $%d", argPos))
		args = append(args, *params.Symbol)
		argPos++
	}
	if len(setClauses) == 0 {
		return fmt.Errorf("no valid fields provided for update: %w", types.ErrBadRequest)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++
	args = append(args, currencyID)

	query := fmt.Sprintf("UPDATE currency SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argPos)

	tag, err := r.pgpool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("currency code already exists: %w", types.ErrConflict)
		}
		return fmt.Errorf("failed to update currency: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("currency %s: %w", currencyID, types.ErrNotFound)
	}
	return nil
}
