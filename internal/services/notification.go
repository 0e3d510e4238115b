package services

import (
	"context"
	"fmt"
	"log"

	"giftregistry/internal/domain"
)

type mailNotifier struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewMailNotifier returns a ReservationNotifier that renders the confirmation
// template and delivers it through the given Mailer.
func NewMailNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.ReservationNotifier {
	return &mailNotifier{mailer: mailer, renderer: renderer}
}

type confirmationEmailData struct {
	GiftTitle   string
	GiftLink    string
	ConfirmLink string
}

// SendConfirmation sends the reservation confirmation email using the
// "confirmation" template.
func (s *mailNotifier) SendConfirmation(ctx context.Context, notice *domain.ReservationNotice) error {
	if notice == nil {
		return &domain.DispatchError{Diagnostic: "confirmation notice is nil"}
	}
	data := &confirmationEmailData{
		GiftTitle:   notice.GiftTitle,
		GiftLink:    notice.GiftLink,
		ConfirmLink: notice.ConfirmLink(),
	}
	subject, htmlBody, textBody, err := s.renderer.Render("confirmation", data)
	if err != nil {
		return &domain.DispatchError{
			Diagnostic: fmt.Sprintf("failed to render confirmation template: %v", err),
			Err:        err,
		}
	}
	if err := s.mailer.Send(notice.To, subject, htmlBody, textBody); err != nil {
		return &domain.DispatchError{
			Diagnostic: fmt.Sprintf("failed to send confirmation email: %v", err),
			Err:        err,
		}
	}
	log.Printf("[EMAIL] Confirmation sent to %s", notice.To)
	return nil
}
