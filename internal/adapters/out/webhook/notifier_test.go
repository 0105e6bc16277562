package webhook_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"freightflow/internal/adapters/out/webhook"
	"freightflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNotifier_PostsNotification(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier := webhook.NewNotifier(server.URL, testLogger())

	receipt, err := notifier.Notify(t.Context(),
		ports.Audience{Kind: ports.AudienceSupplier, RecipientID: "supplier-17"},
		ports.TemplateTenderInvitation,
		map[string]any{"tender_id": "abc"},
	)

	require.NoError(t, err)
	assert.NotEmpty(t, receipt.MessageID)
	assert.False(t, receipt.SentAt.IsZero())

	assert.Equal(t, "SUPPLIER", received["audience_kind"])
	assert.Equal(t, "supplier-17", received["recipient_id"])
	assert.Equal(t, ports.TemplateTenderInvitation, received["template"])
	assert.Equal(t, receipt.MessageID, received["message_id"])
}

func TestNotifier_NonSuccessStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := webhook.NewNotifier(server.URL, testLogger())

	_, err := notifier.Notify(t.Context(),
		ports.Audience{Kind: ports.AudienceCustomer, RecipientID: "customer-3"},
		ports.TemplateOrderConfirmed, nil,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNotifier_LogOnlyModeWithoutEndpoint(t *testing.T) {
	notifier := webhook.NewNotifier("", testLogger())

	receipt, err := notifier.Notify(t.Context(),
		ports.Audience{Kind: ports.AudienceSupplier, RecipientID: "supplier-1"},
		ports.TemplateTenderReminder, nil,
	)

	require.NoError(t, err)
	assert.NotEmpty(t, receipt.MessageID)
}
