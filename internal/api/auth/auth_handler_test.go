package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oselz/watch-catalog-api/app/observability/metrics"
	"github.com/oselz/watch-catalog-api/internal/types"
)

// The handler records request counters; with no meter provider installed the
// instruments come from the global noop provider, which is fine for tests.
func init() {
	metrics.InitAppMetrics()
}

func newTestHandler(repo *MockUserRepo) *Handler {
	svc := NewAuthService(repo, testJWTConfig, testLogger())
	return NewAuthHandler(svc, repo, testLogger())
}

func TestRegisterHandler_CreatesUser(t *testing.T) {
	repo := new(MockUserRepo)
	h := newTestHandler(repo)

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(nil, types.ErrNotFound).Once()
	repo.On("CreateUser", mock.Anything, "Alice", "alice@example.com", mock.AnythingOfType("string")).
		Return(&types.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}, nil)

	body := `{"name":"Alice","email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp types.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	repo.AssertExpectations(t)
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepo)
	h := newTestHandler(repo)

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(&types.User{ID: uuid.New(), Email: "alice@example.com"}, nil)

	body := `{"name":"Alice","email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Email already exists")
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterHandler_MissingFields(t *testing.T) {
	repo := new(MockUserRepo)
	h := newTestHandler(repo)

	body := `{"name":"","email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginHandler_Succeeds(t *testing.T) {
	repo := new(MockUserRepo)
	h := newTestHandler(repo)

	u := &types.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: hashFor(t, "secret123"),
	}
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	body := `{"email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp types.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	repo := new(MockUserRepo)
	h := newTestHandler(repo)

	u := &types.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: hashFor(t, "secret123"),
	}
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	body := `{"email":"alice@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotContains(t, rr.Body.String(), "access_token")
}

func TestLoginHandler_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepo)
	h := newTestHandler(repo)

	repo.On("GetUserByEmail", mock.Anything, "nobody@example.com").
		Return(nil, types.ErrNotFound)

	body := `{"email":"nobody@example.com","password":"whatever"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfileHandler_ThroughMiddleware(t *testing.T) {
	repo := new(MockUserRepo)
	h := newTestHandler(repo)

	u := &types.User{
		ID:       uuid.New(),
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: hashFor(t, "secret123"),
	}
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	guarded := Authenticate(testLogger(), testJWTConfig)(http.HandlerFunc(h.GetProfile))

	req := httptest.NewRequest(http.MethodGet, "/auth/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testJWTConfig, nil))
	rr := httptest.NewRecorder()
	guarded.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp types.UserResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, u.ID, resp.ID)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestProfileHandler_NoIdentityInContext(t *testing.T) {
	repo := new(MockUserRepo)
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/auth/v1/profile", nil)
	rr := httptest.NewRecorder()
	h.GetProfile(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
