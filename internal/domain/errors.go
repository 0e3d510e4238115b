package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for gift and reservation operations.
var (
	ErrNotFound     = errors.New("gift not found")
	ErrInvalidToken = errors.New("invalid or already used confirmation token")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidPin   = errors.New("invalid admin pin")
)

// AlreadyReservedError reports a reserve attempt on a gift whose slot is taken.
// Status lets callers phrase "already confirmed" differently from "awaiting
// confirmation by someone else".
type AlreadyReservedError struct {
	GiftID string
	Status ReservationStatus
}

func (e *AlreadyReservedError) Error() string {
	if e.Status == ReservationConfirmed {
		return fmt.Sprintf("gift %s is already reserved and confirmed", e.GiftID)
	}
	return fmt.Sprintf("gift %s is awaiting confirmation by someone else", e.GiftID)
}

// PersistenceError wraps a backend read or write failure together with the
// backend's diagnostic text. Callers do not retry.
type PersistenceError struct {
	Backend    string
	Op         string
	Diagnostic string
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("%s store: %s failed: %s", e.Backend, e.Op, e.Diagnostic)
	}
	return fmt.Sprintf("%s store: %s failed", e.Backend, e.Op)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DispatchError reports a failed confirmation notification. It is advisory:
// the pending reservation it belongs to stays persisted.
type DispatchError struct {
	Diagnostic string
	Err        error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("confirmation dispatch failed: %s", e.Diagnostic)
}

func (e *DispatchError) Unwrap() error { return e.Err }
