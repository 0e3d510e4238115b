package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"giftregistry/internal/domain"
)

type pinChecker struct {
	plain string
	hash  string
}

// NewPinChecker returns a PinChecker for the shared admin secret. A bcrypt
// hash takes precedence over the plain PIN; with neither configured the gate
// stays locked.
func NewPinChecker(plain, hash string) domain.PinChecker {
	return &pinChecker{plain: plain, hash: hash}
}

func (c *pinChecker) Check(pin string) error {
	if pin == "" {
		return domain.ErrInvalidPin
	}
	if c.hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(pin)); err != nil {
			return domain.ErrInvalidPin
		}
		return nil
	}
	if c.plain == "" {
		return domain.ErrInvalidPin
	}
	if subtle.ConstantTimeCompare([]byte(c.plain), []byte(pin)) != 1 {
		return domain.ErrInvalidPin
	}
	return nil
}
