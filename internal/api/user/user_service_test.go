package user

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oselz/watch-catalog-api/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

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

func TestGetAllUsers_SanitizesEveryRow(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewUserService(repo, testLogger())

	repo.On("GetAllUsers", mock.Anything).Return([]types.User{
		{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Password: "$2a$10$hash"},
		{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", Password: "$2a$10$hash"},
	}, nil)

	users, err := svc.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "bob@example.com", users[1].Email)
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewUserService(repo, testLogger())

	id := uuid.New()
	repo.On("GetUserByID", mock.Anything, id).Return(nil, types.ErrNotFound)

	user, err := svc.GetUserByID(context.Background(), id)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdateUser_RejectsEmptyPatch(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewUserService(repo, testLogger())

	_, err := svc.UpdateUser(context.Background(), uuid.New(), types.UpdateUserParams{})
	assert.ErrorIs(t, err, types.ErrBadRequest)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_RefetchesAndSanitizes(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewUserService(repo, testLogger())

	id := uuid.New()
	newName := "Alice Updated"
	params := types.UpdateUserParams{Name: &newName}

	repo.On("UpdateUser", mock.Anything, id, params).Return(nil)
	repo.On("GetUserByID", mock.Anything, id).Return(&types.User{
		ID:       id,
		Name:     newName,
		Email:    "alice@example.com",
		Password: "$2a$10$hash",
	}, nil)

	result, err := svc.UpdateUser(context.Background(), id, params)
	require.NoError(t, err)
	assert.Equal(t, newName, result.Name)
	repo.AssertExpectations(t)
}
