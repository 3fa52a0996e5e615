// Package security implements the identity resolver: issuing and verifying
// the token pairs that carry a viewer identity. The signing configuration is
// constructed explicitly at startup and passed down; there is no package
// level secret.
package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/plumehq/plume/pkg/internal/models"
)

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret          []byte
	AccessDuration  time.Duration
	RefreshDuration time.Duration
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (cfg TokenConfig) sign(user models.User, duration time.Duration) (string, error) {
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
}

func (cfg TokenConfig) IssueTokenPair(user models.User) (TokenPair, error) {
	access, err := cfg.sign(user, cfg.AccessDuration)
	if err != nil {
		return TokenPair{}, fmt.Errorf("unable to sign access token: %w", err)
	}
	refresh, err := cfg.sign(user, cfg.RefreshDuration)
	if err != nil {
		return TokenPair{}, fmt.Errorf("unable to sign refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyToken returns the viewer id the token was issued to.
func (cfg TokenConfig) VerifyToken(token string) (uuid.UUID, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !parsed.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed subject claim: %w", err)
	}
	return userID, nil
}
