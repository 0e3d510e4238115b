package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ReserveRequest is the request body for POST /gifts/{giftID}/reservation.
type ReserveRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (r ReserveRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(r.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// ReserveResponse is the response body for a successful reservation. EmailSent
// reports whether the confirmation dispatch succeeded; the reservation is
// recorded either way.
type ReserveResponse struct {
	Gift      *GiftView `json:"gift"`
	EmailSent bool      `json:"email_sent"`
}

// ConfirmRequest is the request body for POST /reservations/confirm.
type ConfirmRequest struct {
	Token string `json:"token"`
}

// Validate implements Validator.
func (c ConfirmRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Token) == "" {
		errs = append(errs, "token is required")
	}
	return errs
}

type ReservationController struct {
	Logger  *slog.Logger
	Service domain.GiftService
}

func NewReservationController(logger *slog.Logger, svc domain.GiftService) *ReservationController {
	return &ReservationController{
		Logger:  logger,
		Service: svc,
	}
}

// Reserve godoc
// @Summary Reserve a gift
// @Description Place a pending reservation on a free gift and send the confirmation email. The reservation stays recorded even when the email fails; email_sent reports the outcome.
// @Tags reservations
// @Accept json
// @Produce json
// @Param giftID path string true "Gift ID"
// @Param body body ReserveRequest true "Reserver's email"
// @Success 201 {object} helpers.APIResponse "data contains the gift and email_sent"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts/{giftID}/reservation [post]
func (c *ReservationController) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	giftID := r.PathValue("giftID")

	result, err := c.Service.Reserve(r.Context(), giftID, req.Email)
	if err != nil {
		var reservedErr *domain.AlreadyReservedError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "gift not found")
		case errors.As(err, &reservedErr):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, reservedErr.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}

	h.WriteJSONSuccess(w, http.StatusCreated, ReserveResponse{
		Gift:      NewGiftView(result.Gift),
		EmailSent: result.DispatchErr == nil,
	})
}

// Confirm godoc
// @Summary Confirm a reservation
// @Description Redeem the emailed confirmation token. The token is single use; confirming again returns 404.
// @Tags reservations
// @Accept json
// @Produce json
// @Param body body ConfirmRequest true "Confirmation token"
// @Success 200 {object} helpers.APIResponse "data contains the confirmed gift"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: invalid_token"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/confirm [post]
func (c *ReservationController) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	gift, err := c.Service.Confirm(r.Context(), strings.TrimSpace(req.Token))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeInvalidToken, "unknown or already used token")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, NewGiftView(gift))
}

// Unreserve godoc
// @Summary Free a gift's reservation
// @Description Clear the reservation slot regardless of its state. Admin only.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param giftID path string true "Gift ID"
// @Success 200 {object} helpers.APIResponse "data contains the freed gift"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts/{giftID}/reservation [delete]
func (c *ReservationController) Unreserve(w http.ResponseWriter, r *http.Request) {
	giftID := r.PathValue("giftID")

	gift, err := c.Service.Unreserve(r.Context(), giftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "gift not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, NewGiftView(gift))
}
