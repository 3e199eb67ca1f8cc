// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package auth implements JWT-based authentication, bcrypt password
// hashing and the HTTP middleware guarding the API.
//
// Tokens are stateless HS256 JWTs. The admin flag inside a token is a
// hint only: admin-gated endpoints re-read the user from the store so
// a revoked admin loses access immediately, not at token expiry.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daybreak-labs/daybreak/internal/config"
)

// Claims represents JWT claims.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token creation and validation.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager creates a JWT token manager from the security
// configuration. When no secret is configured a random per-process
// secret is generated; every token then dies with the process, which
// is acceptable for development and explicitly rejected for
// production by config validation.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		generated := make([]byte, 32)
		if _, err := rand.Read(generated); err != nil {
			return nil, fmt.Errorf("generating ephemeral JWT secret: %w", err)
		}
		secret = generated
	}

	return &JWTManager{
		secret: secret,
		ttl:    cfg.TokenTTL,
	}, nil
}

// GenerateToken creates a signed JWT for an authenticated user.
// Uses HMAC-SHA256 (HS256); tokens are stateless and cannot be
// revoked before expiry.
func (m *JWTManager) GenerateToken(userID, username string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT and extracts the user claims. Rejects
// tokens signed with any algorithm other than HMAC to prevent
// algorithm confusion attacks.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// GenerateInviteToken returns a 32-hex-character random invite token.
func GenerateInviteToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating invite token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
