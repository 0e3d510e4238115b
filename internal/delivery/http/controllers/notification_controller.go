package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/domain"
)

// SendConfirmationRequest is the request body for POST /notifications/confirmation.
// The shape matches what the registry page's standalone dispatch function
// accepted, so existing deployments can point at this endpoint unchanged.
type SendConfirmationRequest struct {
	To        string `json:"to"`
	GiftTitle string `json:"giftTitle"`
	GiftLink  string `json:"giftLink"`
	Token     string `json:"token"`
	Origin    string `json:"origin"`
}

// Validate implements Validator.
func (s SendConfirmationRequest) Validate() []string {
	var errs []string
	to := strings.TrimSpace(strings.ToLower(s.To))
	if to == "" {
		errs = append(errs, "to is required")
	} else if !emailRegexp.MatchString(to) {
		errs = append(errs, "invalid recipient email format")
	}
	if strings.TrimSpace(s.GiftTitle) == "" {
		errs = append(errs, "giftTitle is required")
	}
	if strings.TrimSpace(s.Token) == "" {
		errs = append(errs, "token is required")
	}
	if strings.TrimSpace(s.Origin) == "" {
		errs = append(errs, "origin is required")
	}
	return errs
}

// NotificationController resends confirmation emails. It always talks to the
// mail-backed notifier, never the outbound webhook, so a deployment whose
// dispatcher URL points back here cannot loop.
type NotificationController struct {
	Logger   *slog.Logger
	Notifier domain.ReservationNotifier
}

func NewNotificationController(logger *slog.Logger, notifier domain.ReservationNotifier) *NotificationController {
	return &NotificationController{
		Logger:   logger,
		Notifier: notifier,
	}
}

// SendConfirmation godoc
// @Summary Send a reservation confirmation email
// @Description Render and send the confirmation email for a pending reservation. Used by deployments that dispatch notifications over HTTP.
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body SendConfirmationRequest true "Notification payload"
// @Success 200 {object} helpers.APIResponse "data contains sent: true"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: dispatch_failed"
// @Router /notifications/confirmation [post]
func (c *NotificationController) SendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req SendConfirmationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	notice := &domain.ReservationNotice{
		To:        strings.TrimSpace(strings.ToLower(req.To)),
		GiftTitle: req.GiftTitle,
		GiftLink:  req.GiftLink,
		Token:     req.Token,
		Origin:    strings.TrimSuffix(strings.TrimSpace(req.Origin), "/"),
	}
	if err := c.Notifier.SendConfirmation(r.Context(), notice); err != nil {
		c.Logger.ErrorContext(r.Context(), "confirmation dispatch failed", "path", r.URL.Path, "err", err)
		var dispatchErr *domain.DispatchError
		if errors.As(err, &dispatchErr) {
			h.WriteJSONError(w, http.StatusBadGateway, h.ErrCodeDispatchFailed, dispatchErr.Diagnostic)
			return
		}
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"sent": true})
}
