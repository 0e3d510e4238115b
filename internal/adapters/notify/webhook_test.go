package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftregistry/internal/domain"
)

func TestWebhookDispatcher_SendConfirmation(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		gotBody        map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(srv.URL, srv.Client())
	err := d.SendConfirmation(context.Background(), &domain.ReservationNotice{
		To:        "ana@example.com",
		GiftTitle: "Kontrastní leporelo",
		GiftLink:  "https://example.com/leporelo",
		Token:     "tok-123",
		Origin:    "https://gifts.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "ana@example.com", gotBody["to"])
	assert.Equal(t, "Kontrastní leporelo", gotBody["giftTitle"])
	assert.Equal(t, "https://example.com/leporelo", gotBody["giftLink"])
	assert.Equal(t, "tok-123", gotBody["token"])
	assert.Equal(t, "https://gifts.example.com", gotBody["origin"])
}

func TestWebhookDispatcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("smtp relay unavailable"))
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(srv.URL, srv.Client())
	err := d.SendConfirmation(context.Background(), &domain.ReservationNotice{To: "ana@example.com"})
	require.Error(t, err)

	var dispatchErr *domain.DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Contains(t, dispatchErr.Diagnostic, "502")
	assert.Contains(t, dispatchErr.Diagnostic, "smtp relay unavailable")
}

func TestWebhookDispatcher_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	d := NewWebhookDispatcher(srv.URL, nil)
	err := d.SendConfirmation(context.Background(), &domain.ReservationNotice{To: "ana@example.com"})

	var dispatchErr *domain.DispatchError
	require.ErrorAs(t, err, &dispatchErr)
}
