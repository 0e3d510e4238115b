// Package services implements the reservation state machine and the
// administrator's curation operations on top of a GiftRepository.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"giftregistry/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type giftService struct {
	logger   *slog.Logger
	repo     domain.GiftRepository
	guard    domain.ReservationGuard
	tokens   domain.TokenSource
	notifier domain.ReservationNotifier
	siteURL  string
}

// NewGiftService wires the reservation state machine. guard may be nil for
// backends without conditional writes; reserve and confirm then fall back to
// read-validate-write through the repository.
func NewGiftService(
	logger *slog.Logger,
	repo domain.GiftRepository,
	guard domain.ReservationGuard,
	tokens domain.TokenSource,
	notifier domain.ReservationNotifier,
	siteURL string,
) domain.GiftService {
	return &giftService{
		logger:   logger,
		repo:     repo,
		guard:    guard,
		tokens:   tokens,
		notifier: notifier,
		siteURL:  siteURL,
	}
}

func (s *giftService) ListGifts(ctx context.Context) ([]*domain.Gift, error) {
	return s.repo.ListGifts(ctx)
}

// Reserve places a pending reservation on a free gift and dispatches the
// confirmation notification. The dispatch is advisory: a delivery failure is
// reported in the result but never rolls the reservation back.
func (s *giftService) Reserve(ctx context.Context, giftID, email string) (*domain.ReserveResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	gift, err := s.findGift(ctx, giftID)
	if err != nil {
		return nil, err
	}
	if gift.Reservation != nil {
		return nil, &domain.AlreadyReservedError{GiftID: giftID, Status: gift.Reservation.Status}
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		return nil, fmt.Errorf("issue reservation token: %w", err)
	}
	res := &domain.Reservation{
		Status: domain.ReservationPending,
		Email:  email,
		Token:  token,
		At:     time.Now().UTC(),
	}

	if s.guard != nil {
		swapped, err := s.guard.CompareAndSwapReservation(ctx, giftID, "", res)
		if err != nil {
			return nil, err
		}
		if !swapped {
			// Someone else committed first. Re-read to report the slot's
			// current state.
			status := domain.ReservationPending
			if current, rerr := s.findGift(ctx, giftID); rerr == nil && current.Reservation != nil {
				status = current.Reservation.Status
			}
			return nil, &domain.AlreadyReservedError{GiftID: giftID, Status: status}
		}
	} else {
		gift.Reservation = res
		if err := s.repo.UpsertGift(ctx, gift); err != nil {
			return nil, err
		}
	}
	gift.Reservation = res

	result := &domain.ReserveResult{Gift: gift, Token: token}
	notice := &domain.ReservationNotice{
		To:        email,
		GiftTitle: gift.Title,
		GiftLink:  gift.Link,
		Token:     token,
		Origin:    s.siteURL,
	}
	if err := s.notifier.SendConfirmation(ctx, notice); err != nil {
		s.logger.Warn("confirmation dispatch failed",
			"gift_id", giftID,
			"error", err,
		)
		result.DispatchErr = err
	}
	return result, nil
}

// Confirm redeems a pending reservation's token. The token is single use:
// confirming clears it from the stored slot.
func (s *giftService) Confirm(ctx context.Context, token string) (*domain.Gift, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	gifts, err := s.repo.ListGifts(ctx)
	if err != nil {
		return nil, err
	}
	var gift *domain.Gift
	for _, g := range gifts {
		r := g.Reservation
		if r != nil && r.Status == domain.ReservationPending && r.Token == token {
			gift = g
			break
		}
	}
	if gift == nil {
		return nil, domain.ErrInvalidToken
	}

	confirmed := &domain.Reservation{
		Status: domain.ReservationConfirmed,
		Email:  gift.Reservation.Email,
		At:     time.Now().UTC(),
	}
	if s.guard != nil {
		swapped, err := s.guard.CompareAndSwapReservation(ctx, gift.ID, token, confirmed)
		if err != nil {
			return nil, err
		}
		if !swapped {
			return nil, domain.ErrInvalidToken
		}
	} else {
		gift.Reservation = confirmed
		if err := s.repo.UpsertGift(ctx, gift); err != nil {
			return nil, err
		}
	}
	gift.Reservation = confirmed
	return gift, nil
}

// Unreserve frees the gift's reservation slot regardless of its state.
func (s *giftService) Unreserve(ctx context.Context, giftID string) (*domain.Gift, error) {
	gift, err := s.findGift(ctx, giftID)
	if err != nil {
		return nil, err
	}
	gift.Reservation = nil
	if err := s.repo.UpsertGift(ctx, gift); err != nil {
		return nil, err
	}
	return gift, nil
}

// SaveGift creates or updates a gift's curated fields. An existing reservation
// slot is carried over untouched; only the reservation operations mutate it.
func (s *giftService) SaveGift(ctx context.Context, gift *domain.Gift) error {
	if err := gift.Validate(); err != nil {
		return err
	}
	existing, err := s.findGift(ctx, gift.ID)
	switch {
	case err == nil:
		gift.Reservation = existing.Reservation
	case errors.Is(err, domain.ErrNotFound):
		gift.Reservation = nil
	default:
		return err
	}
	return s.repo.UpsertGift(ctx, gift)
}

func (s *giftService) DeleteGift(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.repo.RemoveGift(ctx, id)
}

func (s *giftService) findGift(ctx context.Context, id string) (*domain.Gift, error) {
	gifts, err := s.repo.ListGifts(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range gifts {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrNotFound
}
