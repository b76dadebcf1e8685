package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating the access
// tokens that identify callers on every habit operation.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for the given user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// ValidateToken checks a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
