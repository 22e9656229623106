package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oselz/watch-catalog-api/config"
	"github.com/oselz/watch-catalog-api/internal/api"
	"github.com/oselz/watch-catalog-api/internal/types"
)

func signToken(t *testing.T, cfg config.JWTConfig, mutate func(*types.Claims)) string {
	t.Helper()
	now := time.Now()
	claims := &types.Claims{
		UserID: "6f1c8a1e-0000-0000-0000-000000000001",
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "6f1c8a1e-0000-0000-0000-000000000001",
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.SecretKey))
	require.NoError(t, err)
	return signed
}

func guardedEcho(t *testing.T, cfg config.JWTConfig) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _ := api.GetUserEmailFromContext(r.Context())
		w.Header().Set("X-Email", email)
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(testLogger(), cfg)(next)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	handler := guardedEcho(t, testJWTConfig)

	req := httptest.NewRequest(http.MethodGet, "/auth/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testJWTConfig, nil))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice@example.com", rr.Header().Get("X-Email"))
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	handler := guardedEcho(t, testJWTConfig)

	req := httptest.NewRequest(http.MethodGet, "/auth/v1/profile", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Authorization token is missing.")
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	handler := guardedEcho(t, testJWTConfig)

	expired := signToken(t, testJWTConfig, func(c *types.Claims) {
		c.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Authorization token has expired.")
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	handler := guardedEcho(t, testJWTConfig)

	other := testJWTConfig
	other.SecretKey = "a-completely-different-secret"
	forged := signToken(t, other, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid token signature")
}

func TestAuthenticate_MalformedToken(t *testing.T) {
	handler := guardedEcho(t, testJWTConfig)

	req := httptest.NewRequest(http.MethodGet, "/auth/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Malformed token")
}

func TestAuthenticate_BadHeaderFormat(t *testing.T) {
	handler := guardedEcho(t, testJWTConfig)

	req := httptest.NewRequest(http.MethodGet, "/auth/v1/profile", nil)
	req.Header.Set("Authorization", "Token abc123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestAuthenticate_EmptySecretPanics(t *testing.T) {
	empty := config.JWTConfig{SecretKey: "", TokenTTL: time.Hour}
	assert.Panics(t, func() {
		Authenticate(testLogger(), empty)
	})
}
