package domain

import (
	"context"
	"net/url"
)

// ReservationNotice is the fixed payload of a confirmation dispatch.
type ReservationNotice struct {
	To        string `json:"to"`
	GiftTitle string `json:"giftTitle"`
	GiftLink  string `json:"giftLink"`
	Token     string `json:"token"`
	Origin    string `json:"origin"`
}

// ConfirmLink builds the link the visitor follows to confirm the reservation.
// The hosting shell detects the fragment on load and calls Confirm.
func (n *ReservationNotice) ConfirmLink() string {
	return n.Origin + "#confirm=" + url.QueryEscape(n.Token)
}

// ReservationNotifier dispatches the confirmation notification for a freshly
// created pending reservation. Failures are surfaced but never roll the
// reservation back.
type ReservationNotifier interface {
	SendConfirmation(ctx context.Context, notice *ReservationNotice) error
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}
