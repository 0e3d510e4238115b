// Package controllers holds the HTTP handlers for the gift registry API.
package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/domain"
)

// ReservationView is the public projection of a reservation slot. The email is
// masked and the confirmation token never leaves the server.
type ReservationView struct {
	Status string    `json:"status"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

// GiftView is the public projection of a gift.
type GiftView struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Link        string           `json:"link,omitempty"`
	Image       string           `json:"image,omitempty"`
	PriceCZK    *float64         `json:"priceCZK,omitempty"`
	Note        string           `json:"note,omitempty"`
	Reservation *ReservationView `json:"reservation"`
}

// maskEmail keeps the domain and hides most of the local part, so visitors can
// tell whether it was them who reserved without learning who else did.
func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "**"
	}
	local := []rune(email[:at])
	if len(local) <= 2 {
		return "**" + email[at:]
	}
	return string(local[0]) + "***" + string(local[len(local)-1]) + email[at:]
}

// NewGiftView projects a gift for public consumption.
func NewGiftView(g *domain.Gift) *GiftView {
	view := &GiftView{
		ID:       g.ID,
		Title:    g.Title,
		Link:     g.Link,
		Image:    g.Image,
		PriceCZK: g.PriceCZK,
		Note:     g.Note,
	}
	if g.Reservation != nil {
		view.Reservation = &ReservationView{
			Status: string(g.Reservation.Status),
			Email:  maskEmail(g.Reservation.Email),
			At:     g.Reservation.At,
		}
	}
	return view
}

// UpsertGiftRequest is the request body for PUT /gifts. The reservation slot is
// not accepted here; it belongs to the reservation endpoints.
type UpsertGiftRequest struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Link     string   `json:"link"`
	Image    string   `json:"image"`
	PriceCZK *float64 `json:"priceCZK"`
	Note     string   `json:"note"`
}

// Validate implements Validator.
func (u UpsertGiftRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.ID) == "" {
		errs = append(errs, "id is required")
	} else if strings.ContainsAny(u.ID, " \t\n") {
		errs = append(errs, "id must not contain whitespace")
	}
	if strings.TrimSpace(u.Title) == "" {
		errs = append(errs, "title is required")
	}
	if u.PriceCZK != nil && *u.PriceCZK < 0 {
		errs = append(errs, "priceCZK must not be negative")
	}
	return errs
}

type GiftController struct {
	Logger  *slog.Logger
	Service domain.GiftService
}

func NewGiftController(logger *slog.Logger, svc domain.GiftService) *GiftController {
	return &GiftController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List all gifts
// @Description List every gift in the registry. Reserved gifts carry a masked reservation; confirmation tokens are never included.
// @Tags gifts
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the gift list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts [get]
func (c *GiftController) List(w http.ResponseWriter, r *http.Request) {
	gifts, err := c.Service.ListGifts(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	views := make([]*GiftView, 0, len(gifts))
	for _, g := range gifts {
		views = append(views, NewGiftView(g))
	}
	h.WriteJSONSuccess(w, http.StatusOK, views)
}

// Save godoc
// @Summary Create or update a gift
// @Description Create a gift, or update an existing gift's curated fields. An existing reservation is preserved.
// @Tags gifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gift body UpsertGiftRequest true "Gift data"
// @Success 200 {object} helpers.APIResponse "data contains the saved gift"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts [put]
func (c *GiftController) Save(w http.ResponseWriter, r *http.Request) {
	var req UpsertGiftRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	gift := &domain.Gift{
		ID:       strings.TrimSpace(req.ID),
		Title:    strings.TrimSpace(req.Title),
		Link:     strings.TrimSpace(req.Link),
		Image:    strings.TrimSpace(req.Image),
		PriceCZK: req.PriceCZK,
		Note:     strings.TrimSpace(req.Note),
	}
	if err := c.Service.SaveGift(r.Context(), gift); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, NewGiftView(gift))
}

// Delete godoc
// @Summary Delete a gift
// @Description Remove a gift from the registry. Deleting an unknown gift succeeds.
// @Tags gifts
// @Produce json
// @Security BearerAuth
// @Param giftID path string true "Gift ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts/{giftID} [delete]
func (c *GiftController) Delete(w http.ResponseWriter, r *http.Request) {
	giftID := r.PathValue("giftID")
	if err := c.Service.DeleteGift(r.Context(), giftID); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
