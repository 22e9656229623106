package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oselz/watch-catalog-api/config"
	"github.com/oselz/watch-catalog-api/internal/types"
)

var testJWTConfig = config.JWTConfig{
	SecretKey: "test-secret-key",
	TokenTTL:  time.Hour,
	Issuer:    "watch-catalog-api",
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_ReturnsToken(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	created := &types.User{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
	}
	repo.On("CreateUser", mock.Anything, "Alice", "alice@example.com", mock.AnythingOfType("string")).
		Return(created, nil)

	token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	repo.AssertExpectations(t)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	var storedHash string
	repo.On("CreateUser", mock.Anything, "Bob", "bob@example.com", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(3)
		}).
		Return(&types.User{ID: uuid.New(), Email: "bob@example.com"}, nil)

	_, err := svc.Register(context.Background(), "Bob", "bob@example.com", "hunter2hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2hunter2", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter2hunter2")))
}

func TestLogin_Succeeds(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	u := &types.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: hashFor(t, "secret123"),
	}
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	token, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	u := &types.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: hashFor(t, "secret123"),
	}
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	token, err := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.Nil(t, token)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	repo.On("GetUserByEmail", mock.Anything, "nobody@example.com").
		Return(nil, types.ErrNotFound)

	token, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.Nil(t, token)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

// Soft-deleted users are not filtered from the credential lookup, so they can
// still authenticate. The listing endpoint is the only place the flag hides
// rows.
func TestLogin_SoftDeletedUserStillAuthenticates(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	deletedAt := time.Now().Add(-24 * time.Hour)
	u := &types.User{
		ID:        uuid.New(),
		Email:     "ghost@example.com",
		Password:  hashFor(t, "stillhere"),
		DeletedAt: &deletedAt,
	}
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(u, nil)

	token, err := svc.Login(context.Background(), "ghost@example.com", "stillhere")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
}

func TestValidateUser_ReturnsSanitizedProfile(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	u := &types.User{
		ID:       uuid.New(),
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: hashFor(t, "secret123"),
	}
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	result, err := svc.ValidateUser(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, result.ID)
	assert.Equal(t, "Alice", result.Name)

	// The serialized profile must never leak credential material.
	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), u.Password)
}

func TestValidateUser_WrongPasswordIsBadRequest(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	u := &types.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: hashFor(t, "secret123"),
	}
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	result, err := svc.ValidateUser(context.Background(), "alice@example.com", "nope")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, types.ErrBadRequest)
}

func TestRegisterThenLogin_TokensBothValid(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewAuthService(repo, testJWTConfig, testLogger())

	id := uuid.New()
	var storedHash string
	repo.On("CreateUser", mock.Anything, "Alice", "alice@example.com", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(3)
		}).
		Return(&types.User{ID: id, Email: "alice@example.com"}, nil)

	registered, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(&types.User{ID: id, Email: "alice@example.com", Password: storedHash}, nil)

	loggedIn, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, loggedIn.AccessToken)
}
