// Package token issues and parses HS256 session tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// JWTCodec signs session tokens with a shared secret.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

// Option configures a JWTCodec.
type Option func(*JWTCodec)

// WithClock overrides the time source used to check expiry.
func WithClock(now func() time.Time) Option {
	return func(c *JWTCodec) { c.now = now }
}

func NewJWTCodec(secret string, opts ...Option) *JWTCodec {
	c := &JWTCodec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue encodes userID and the validity window. Each token carries a random
// jti, so two tokens for the same user and second still differ.
func (c *JWTCodec) Issue(userID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates the signature and expiry and returns the encoded claims.
// Expired tokens yield domain.ErrTokenExpired; malformed tokens, bad
// signatures and unexpected algorithms yield domain.ErrTokenMalformed.
func (c *JWTCodec) Parse(tokenString string) (*domain.TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	case err != nil || !tkn.Valid:
		return nil, domain.ErrTokenMalformed
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.TokenClaims{
		UserID:    claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
