package authUtils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 72 * time.Hour

// TokenInfo is what the client can learn from a credential without the
// signing key.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry is at or before now. Tokens
// without an expiry never expire.
func (t *TokenInfo) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(t.ExpiresAt)
}

// InspectToken decodes the standard claims of a JWT without verifying its
// signature. The backend remains the authority on validity.
func InspectToken(tokenString string) (*TokenInfo, error) {
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != 0 {
		info.IssuedAt = time.Unix(claims.IssuedAt, 0)
	}
	if claims.ExpiresAt != 0 {
		info.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	return info, nil
}

// GenerateToken signs an HS256 token whose subject is the username.
func GenerateToken(secret []byte, username string, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("JWT secret is not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   username,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies an HS256 token and returns its subject.
func ParseToken(secret []byte, tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}
