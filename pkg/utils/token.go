package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hospital-management-backend/internal/models"
)

var (
	jwtSecret     string
	accessExpiry  time.Duration
	sessionExpiry time.Duration
)

// InitTokens initializes the JWT secret and token lifetimes
func InitTokens(secret string, accessExp, sessionExp time.Duration) {
	jwtSecret = secret
	accessExpiry = accessExp
	sessionExpiry = sessionExp
}

// Claims represents JWT custom claims
type Claims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates a short-lived JWT access token for API clients
func GenerateAccessToken(userID uint, username string, role models.Role) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateAccessToken validates and parses a JWT access token
func ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// GenerateSessionToken generates an opaque session token for the cookie
func GenerateSessionToken() string {
	return uuid.New().String()
}

// HashSessionToken creates a SHA-256 hash of the session token for storage
func HashSessionToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// GetSessionExpiry returns the session lifetime
func GetSessionExpiry() time.Duration {
	return sessionExpiry
}
