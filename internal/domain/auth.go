package domain

import "time"

// PinChecker validates the shared admin secret.
type PinChecker interface {
	Check(pin string) error
}

// TokenIssuer issues the admin session token after a successful PIN check.
type TokenIssuer interface {
	Issue(expiry time.Duration) (string, error)
}

// TokenVerifier verifies an admin session token.
type TokenVerifier interface {
	Verify(token string) error
}
