package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ReservationStatus is the state of the single reservation slot on a gift.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
)

// Reservation is the claim embedded in a gift. A pending reservation carries the
// one-shot confirmation token; confirming clears it.
type Reservation struct {
	Status ReservationStatus `json:"status"`
	Email  string            `json:"email"`
	Token  string            `json:"token,omitempty"`
	At     time.Time         `json:"at"`
}

// Gift is a registry entry. The id is chosen by the creator and acts as the
// primary key across every backend.
// swagger:model Gift
type Gift struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Link        string       `json:"link,omitempty"`
	Image       string       `json:"image,omitempty"`
	PriceCZK    *float64     `json:"priceCZK,omitempty"`
	Note        string       `json:"note,omitempty"`
	Reservation *Reservation `json:"reservation"`
}

// Validate checks the fields the administrator controls. The reservation slot is
// owned by the reservation operations and is not validated here.
func (g *Gift) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if strings.ContainsAny(g.ID, " \t\n") {
		return fmt.Errorf("%w: id must not contain whitespace", ErrInvalidInput)
	}
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if g.PriceCZK != nil && *g.PriceCZK < 0 {
		return fmt.Errorf("%w: priceCZK must not be negative", ErrInvalidInput)
	}
	return nil
}

// CheckShape verifies the single reservation-slot invariant: the slot is empty,
// pending with a token, or confirmed without one.
func (g *Gift) CheckShape() error {
	r := g.Reservation
	if r == nil {
		return nil
	}
	switch r.Status {
	case ReservationPending:
		if r.Token == "" {
			return fmt.Errorf("gift %s: pending reservation without a token", g.ID)
		}
	case ReservationConfirmed:
		if r.Token != "" {
			return fmt.Errorf("gift %s: confirmed reservation still carries a token", g.ID)
		}
	default:
		return fmt.Errorf("gift %s: unknown reservation status %q", g.ID, r.Status)
	}
	if r.Email == "" {
		return fmt.Errorf("gift %s: reservation without an email", g.ID)
	}
	return nil
}

// PatchBody returns the writable fields keyed by wire name. The id stays out of
// the body, and because the map is built from the typed struct, server-computed
// columns can never end up in a write. An unset price stays out of the body
// entirely, so a patch leaves the stored price untouched. The reservation key
// is always present so that a nil slot clears the stored value.
func (g *Gift) PatchBody() map[string]any {
	body := map[string]any{
		"title":       g.Title,
		"link":        g.Link,
		"image":       g.Image,
		"note":        g.Note,
		"reservation": g.Reservation,
	}
	if g.PriceCZK != nil {
		body["priceCZK"] = *g.PriceCZK
	}
	return body
}

// Clone returns a deep copy, including the reservation slot and price.
func (g *Gift) Clone() *Gift {
	out := *g
	if g.PriceCZK != nil {
		v := *g.PriceCZK
		out.PriceCZK = &v
	}
	if g.Reservation != nil {
		r := *g.Reservation
		out.Reservation = &r
	}
	return &out
}

// GiftStore is the backend adapter: uniform raw-record operations over one of
// the interchangeable storage backends. Patch applies only the given fields;
// fields absent from the map are left untouched on the backend.
type GiftStore interface {
	List(ctx context.Context) ([]*Gift, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, gift *Gift) error
	Patch(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// ReservationGuard is an optional GiftStore capability: a single conditional
// write on the reservation slot. An empty expectToken requires the slot to be
// free; otherwise the current reservation must be pending with exactly that
// token. A nil res clears the slot. Backends without this capability leave the
// read-modify-write window of the caller open.
type ReservationGuard interface {
	CompareAndSwapReservation(ctx context.Context, id, expectToken string, res *Reservation) (swapped bool, err error)
}

// GiftRepository is typed CRUD over a GiftStore.
type GiftRepository interface {
	ListGifts(ctx context.Context) ([]*Gift, error)
	UpsertGift(ctx context.Context, gift *Gift) error
	RemoveGift(ctx context.Context, id string) error
}

// TokenSource issues the opaque single-use capabilities handed out by Reserve.
type TokenSource interface {
	NewToken() (string, error)
}

// ReserveResult is the outcome of a successful Reserve call.
type ReserveResult struct {
	Gift  *Gift
	Token string
	// DispatchErr reports a failed confirmation dispatch. The reservation
	// itself was recorded; delivery is advisory and is never rolled back.
	DispatchErr error
}

// GiftService is the reservation state machine plus the administrator's
// curation operations.
type GiftService interface {
	ListGifts(ctx context.Context) ([]*Gift, error)
	Reserve(ctx context.Context, giftID, email string) (*ReserveResult, error)
	Confirm(ctx context.Context, token string) (*Gift, error)
	Unreserve(ctx context.Context, giftID string) (*Gift, error)
	SaveGift(ctx context.Context, gift *Gift) error
	DeleteGift(ctx context.Context, id string) error
}
