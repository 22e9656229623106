package user

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

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo defines the contract for user persistence. It is the credential
// store for the auth flow as well, which is why GetUserByEmail returns the
// password hash and does not filter soft-deleted rows.
type UserRepo interface {
	// CreateUser persists a new user with an already-hashed password.
	// Returns types.ErrConflict when the email is taken.
	CreateUser(ctx context.Context, name, email, passwordHash string) (*types.User, error)

	// GetUserByEmail retrieves a user by email, including the password hash.
	// Soft-deleted users are NOT excluded here; see the user listing for the
	// path that is.
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)

	// GetUserByID retrieves a user by ID. Returns types.ErrNotFound on miss.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)

	// GetAllUsers lists users excluding soft-deleted rows, ordered by name.
	GetAllUsers(ctx context.Context) ([]types.User, error)

	// UpdateUser applies the provided fields. Returns types.ErrNotFound when
	// no row matched.
	UpdateUser(ctx context.Context, userID uuid.UUID, params types.UpdateUserParams) error
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresUserRepo(pgxpool *pgxpool.Pool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgxpool,
	}
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, name, email, passwordHash string) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
         VALUES ($1, $2, $3)
         RETURNING id, name, email, password_hash, created_at, updated_at`,
		name, email, passwordHash).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("email already registered: %w", types.ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &user, nil
}

func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
         FROM users WHERE email = $1`,
		email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return &user, nil
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
         FROM users WHERE id = $1`,
		userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}
	return &user, nil
}

func (r *PostgresUserRepo) GetAllUsers(ctx context.Context) ([]types.User, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, name, email, created_at, updated_at
         FROM users WHERE deleted_at IS NULL ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating user rows: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepo) UpdateUser(ctx context.Context, userID uuid.UUID, params types.UpdateUserParams) error {
	setClauses := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	argPos := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}
	if params.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argPos))
		args = append(args, *params.Email)
		argPos++
	}
	if len(setClauses) == 0 {
		return fmt.Errorf("no valid fields provided for update: %w", types.ErrBadRequest)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++
	args = append(args, userID)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argPos)

	tag, err := r.pgpool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
	}
	return nil
}
