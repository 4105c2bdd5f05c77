package session

import (
	"crypto/rand"
	"encoding/base64"

	"upboard/internal/domain"

	"golang.org/x/crypto/chacha20poly1305"
)

// seal encrypts the Up access token with XChaCha20-Poly1305. The random nonce
// is prepended to the ciphertext.
func (m *Manager) seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(m.sealKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// open decrypts a sealed token. Any tampering fails authentication and is
// reported as a session error, never a crypto detail.
func (m *Manager) open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", &domain.ErrSessionExpired{Reason: "malformed token claim"}
	}

	aead, err := chacha20poly1305.NewX(m.sealKey)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", &domain.ErrSessionExpired{Reason: "malformed token claim"}
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", &domain.ErrSessionExpired{Reason: "token claim failed authentication"}
	}
	return string(plaintext), nil
}
