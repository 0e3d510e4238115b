package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"giftregistry/internal/domain"
)

// reservationTokenBytes is the entropy per token; 16 bytes keeps collisions
// negligible for the lifetime of a registry.
const reservationTokenBytes = 16

type tokenSource struct{}

// NewTokenSource returns a TokenSource producing opaque url-safe reservation
// tokens. The string has no structure; it is a bearer capability.
func NewTokenSource() domain.TokenSource {
	return tokenSource{}
}

func (tokenSource) NewToken() (string, error) {
	b := make([]byte, reservationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate reservation token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
