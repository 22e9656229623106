package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the access token payload: subject user id and email.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the payload returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
