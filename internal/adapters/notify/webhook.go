// Package notify dispatches confirmation notifications to an external
// delivery service.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"giftregistry/internal/domain"
)

type webhookDispatcher struct {
	url    string
	client *http.Client
}

// NewWebhookDispatcher returns a ReservationNotifier that POSTs the notice as
// JSON to the given dispatcher URL. A non-2xx response is a DispatchError
// carrying the response body; the caller treats it as advisory.
func NewWebhookDispatcher(url string, client *http.Client) domain.ReservationNotifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &webhookDispatcher{url: url, client: client}
}

func (d *webhookDispatcher) SendConfirmation(ctx context.Context, notice *domain.ReservationNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return &domain.DispatchError{Diagnostic: err.Error(), Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return &domain.DispatchError{Diagnostic: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return &domain.DispatchError{Diagnostic: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &domain.DispatchError{
			Diagnostic: fmt.Sprintf("dispatcher returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}
	return nil
}
