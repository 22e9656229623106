package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/oselz/watch-catalog-api/config"
	"github.com/oselz/watch-catalog-api/internal/api/user"
	"github.com/oselz/watch-catalog-api/internal/types"
)

// bcryptCost matches the work factor the rest of the system was seeded with.
const bcryptCost = 10

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService orchestrates registration, login and credential validation.
type AuthService interface {
	// Register hashes the password, persists the user and returns a fresh
	// access token. It does NOT check for duplicate emails; the handler
	// performs that check before calling here, and the unique constraint on
	// users.email is the backstop.
	Register(ctx context.Context, name, email, password string) (*types.TokenResponse, error)

	// Login authenticates by email and password and returns an access token.
	// Unknown email and wrong password both fail with types.ErrUnauthenticated.
	Login(ctx context.Context, email, password string) (*types.TokenResponse, error)

	// ValidateUser runs the same lookup and comparison as Login but returns a
	// sanitized profile instead of a token, and fails with types.ErrBadRequest
	// rather than ErrUnauthenticated.
	ValidateUser(ctx context.Context, email, password string) (*types.UserResult, error)

	// GetUserByEmail returns the sanitized profile for the given email.
	// A miss fails with types.ErrUnauthenticated.
	GetUserByEmail(ctx context.Context, email string) (*types.UserResult, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	users  user.UserRepo
	jwtCfg config.JWTConfig
}

func NewAuthService(users user.UserRepo, jwtCfg config.JWTConfig, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		users:  users,
		jwtCfg: jwtCfg,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*types.TokenResponse, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("email", email))
	l.InfoContext(ctx, "Starting user registration")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		l.ErrorContext(ctx, "Password hashing failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.CreateUser(ctx, name, email, string(hashedPassword))
	if err != nil {
		l.ErrorContext(ctx, "User registration failed", slog.Any("error", err))
		return nil, err
	}
	l.InfoContext(ctx, "User saved to the database successfully")

	token, err := GenerateAccessToken(s.jwtCfg, newUser.ID.String(), newUser.Email)
	if err != nil {
		l.ErrorContext(ctx, "Token generation failed", slog.Any("error", err))
		return nil, err
	}

	return &types.TokenResponse{AccessToken: token}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	l := s.logger.With(slog.String("method", "Login"), slog.String("email", email))

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		l.WarnContext(ctx, "User login failed, user not found")
		return nil, fmt.Errorf("user not found: %w", types.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		l.WarnContext(ctx, "User login failed, invalid credentials")
		return nil, fmt.Errorf("invalid credentials: %w", types.ErrUnauthenticated)
	}

	token, err := GenerateAccessToken(s.jwtCfg, u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &types.TokenResponse{AccessToken: token}, nil
}

func (s *AuthServiceImpl) ValidateUser(ctx context.Context, email, password string) (*types.UserResult, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", types.ErrBadRequest)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("password does not match: %w", types.ErrBadRequest)
	}

	return u.Sanitize(), nil
}

func (s *AuthServiceImpl) GetUserByEmail(ctx context.Context, email string) (*types.UserResult, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", types.ErrUnauthenticated)
	}
	return u.Sanitize(), nil
}
