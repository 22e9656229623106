package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/oselz/watch-catalog-api/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService exposes the user profile operations.
type UserService interface {
	// GetAllUsers returns sanitized profiles for every non-deleted user.
	GetAllUsers(ctx context.Context) ([]types.UserResult, error)

	// GetUserByID returns a single sanitized profile.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.UserResult, error)

	// UpdateUser applies a partial profile update and returns the updated
	// sanitized profile. An empty patch is rejected with types.ErrBadRequest.
	UpdateUser(ctx context.Context, userID uuid.UUID, params types.UpdateUserParams) (*types.UserResult, error)
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *UserServiceImpl) GetAllUsers(ctx context.Context) ([]types.UserResult, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}

	results := make([]types.UserResult, 0, len(users))
	for i := range users {
		results = append(results, *users[i].Sanitize())
	}
	return results, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.UserResult, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user.Sanitize(), nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, userID uuid.UUID, params types.UpdateUserParams) (*types.UserResult, error) {
	l := s.logger.With(slog.String("method", "UpdateUser"), slog.String("userID", userID.String()))

	if params.Name == nil && params.Email == nil {
		l.WarnContext(ctx, "No data provided for update")
		return nil, fmt.Errorf("no valid fields provided for update: %w", types.ErrBadRequest)
	}

	if err := s.repo.UpdateUser(ctx, userID, params); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	updated, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve updated user: %w", err)
	}

	l.InfoContext(ctx, "User updated successfully")
	return updated.Sanitize(), nil
}
