package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/oselz/watch-catalog-api/internal/types"
)

// MockUserRepo is a testify mock of the user repository used as the
// credential store.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateUser(ctx context.Context, name, email, passwordHash string) (*types.User, error) {
	args := m.Called(ctx, name, email, passwordHash)
	if u := args.Get(0); u != nil {
		return u.(*types.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*types.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*types.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetAllUsers(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]types.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) UpdateUser(ctx context.Context, userID uuid.UUID, params types.UpdateUserParams) error {
	args := m.Called(ctx, userID, params)
	return args.Error(0)
}
