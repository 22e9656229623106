package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oselz/watch-catalog-api/config"
	"github.com/oselz/watch-catalog-api/internal/types"
)

// GenerateAccessToken signs an HS256 access token carrying the subject user
// id and email. Expiry is issuance time plus the configured TTL (one hour).
func GenerateAccessToken(jwtCfg config.JWTConfig, userID, email string) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtCfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtCfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}
