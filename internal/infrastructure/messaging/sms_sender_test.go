package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sobitas/backend/internal/infrastructure/config"
)

func TestHTTPSender_Send(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"key":    r.PostFormValue("key"),
			"sender": r.PostFormValue("sender"),
			"mobile": r.PostFormValue("mobile"),
			"sms":    r.PostFormValue("sms"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewHTTPSender(config.MessagingConfig{
		Enabled:  true,
		Endpoint: srv.URL,
		APIKey:   "secret",
		Sender:   "SOBITAS",
		Timeout:  5 * time.Second,
	})

	err := sender.Send(context.Background(), "21698765432", "Commande 2026/0042: Prête")
	require.NoError(t, err)
	assert.Equal(t, "secret", gotForm["key"])
	assert.Equal(t, "SOBITAS", gotForm["sender"])
	assert.Equal(t, "21698765432", gotForm["mobile"])
	assert.Equal(t, "Commande 2026/0042: Prête", gotForm["sms"])
}

func TestHTTPSender_Send_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewHTTPSender(config.MessagingConfig{
		Endpoint: srv.URL,
		Timeout:  5 * time.Second,
	})

	err := sender.Send(context.Background(), "21698765432", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestLoggingSender_Send(t *testing.T) {
	sender := NewLoggingSender(zap.NewNop())
	assert.NoError(t, sender.Send(context.Background(), "21611111111", "test"))
}
