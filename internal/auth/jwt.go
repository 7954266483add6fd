// Package auth mints and verifies the opaque admin session token.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried inside an admin token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses admin tokens with an HS256 key.
type TokenIssuer struct {
	key      []byte
	lifetime time.Duration
}

// NewTokenIssuer creates an issuer. Tokens expire after lifetime.
func NewTokenIssuer(key string, lifetime time.Duration) (*TokenIssuer, error) {
	if key == "" {
		return nil, errors.New("jwt key is empty")
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &TokenIssuer{key: []byte(key), lifetime: lifetime}, nil
}

// Generate signs a token for username.
func (t *TokenIssuer) Generate(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "afu-assistant",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Parse verifies tokenString and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
