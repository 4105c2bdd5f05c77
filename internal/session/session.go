// Package session issues and verifies stateless dashboard sessions.
// The Up access token is never stored server-side: it travels sealed with
// ChaCha20-Poly1305 inside the signed JWT the browser holds, and is opened
// again on every request.
package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"upboard/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager signs, verifies and seals session tokens.
type Manager struct {
	secret  []byte
	sealKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewManager creates a session manager. sealKeyHex must decode to a 32-byte
// XChaCha20-Poly1305 key.
func NewManager(secret, sealKeyHex string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	key, err := hex.DecodeString(sealKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode seal key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("seal key must be 32 bytes, got %d", len(key))
	}
	return &Manager{
		secret:  []byte(secret),
		sealKey: key,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

type claims struct {
	SealedToken string `json:"stk"`
	jwt.RegisteredClaims
}

// Issue creates a signed session token embedding the sealed Up access token.
func (m *Manager) Issue(upToken string) (string, error) {
	sealed, err := m.seal(upToken)
	if err != nil {
		return "", fmt.Errorf("seal token: %w", err)
	}

	now := m.now()
	c := claims{
		SealedToken: sealed,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "upboard",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Verify checks the session token's signature and expiry and returns the Up
// access token it carries. All failure modes surface as ErrSessionExpired so
// the caller can treat them uniformly as "log in again".
func (m *Manager) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", &domain.ErrSessionExpired{Reason: "expired"}
		}
		return "", &domain.ErrSessionExpired{Reason: "invalid signature or format"}
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || c.SealedToken == "" {
		return "", &domain.ErrSessionExpired{Reason: "missing token claim"}
	}
	return m.open(c.SealedToken)
}
