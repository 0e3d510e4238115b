package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	h "giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/domain"
)

// AdminLoginRequest is the request body for POST /auth/admin.
type AdminLoginRequest struct {
	Pin string `json:"pin"`
}

// Validate implements Validator.
func (a AdminLoginRequest) Validate() []string {
	var errs []string
	if a.Pin == "" {
		errs = append(errs, "pin is required")
	}
	return errs
}

// AdminLoginResponse is the response body for POST /auth/admin.
type AdminLoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

type AuthController struct {
	Logger   *slog.Logger
	Pins     domain.PinChecker
	Issuer   domain.TokenIssuer
	TokenTTL time.Duration
}

func NewAuthController(logger *slog.Logger, pins domain.PinChecker, issuer domain.TokenIssuer, tokenTTL time.Duration) *AuthController {
	return &AuthController{
		Logger:   logger,
		Pins:     pins,
		Issuer:   issuer,
		TokenTTL: tokenTTL,
	}
}

// AdminLogin godoc
// @Summary Exchange the admin PIN for a session token
// @Description Validate the shared admin PIN and issue a Bearer token for the admin endpoints.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Admin PIN"
// @Success 200 {object} helpers.APIResponse "data contains the session token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/admin [post]
func (c *AuthController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Pins.Check(req.Pin); err != nil {
		if errors.Is(err, domain.ErrInvalidPin) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid pin")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	token, err := c.Issuer.Issue(c.TokenTTL)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, AdminLoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(c.TokenTTL.Seconds()),
	})
}
