// Package http wires the controllers into the HTTP router.
package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"giftregistry/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAdmin wraps the handlers behind the admin session token.
func NewRouter(
	giftController *controllers.GiftController,
	reservationController *controllers.ReservationController,
	authController *controllers.AuthController,
	notificationController *controllers.NotificationController,
	requireAdmin func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Gifts
	mux.HandleFunc("GET /gifts", giftController.List)
	mux.HandleFunc("PUT /gifts", requireAdmin(giftController.Save))
	mux.HandleFunc("DELETE /gifts/{giftID}", requireAdmin(giftController.Delete))

	// Reservations
	mux.HandleFunc("POST /gifts/{giftID}/reservation", reservationController.Reserve)
	mux.HandleFunc("DELETE /gifts/{giftID}/reservation", requireAdmin(reservationController.Unreserve))
	mux.HandleFunc("POST /reservations/confirm", reservationController.Confirm)

	// Auth
	mux.HandleFunc("POST /auth/admin", authController.AdminLogin)

	// Notifications
	mux.HandleFunc("POST /notifications/confirmation", notificationController.SendConfirmation)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
