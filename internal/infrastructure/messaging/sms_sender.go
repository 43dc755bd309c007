package messaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/sobitas/backend/internal/domain/messaging"
	"github.com/sobitas/backend/internal/infrastructure/config"
)

// HTTPSender delivers messages through the SMS gateway's HTTP API.
// The gateway owns delivery confirmation and retries; a non-2xx response
// here is just reported to the caller's logger.
type HTTPSender struct {
	client   *http.Client
	endpoint string
	apiKey   string
	sender   string
}

// NewHTTPSender creates a new HTTPSender from the messaging configuration
func NewHTTPSender(cfg config.MessagingConfig) *HTTPSender {
	return &HTTPSender{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		sender:   cfg.Sender,
	}
}

// Send posts a rendered message to the gateway
func (s *HTTPSender) Send(ctx context.Context, phone, text string) error {
	form := url.Values{}
	form.Set("key", s.apiKey)
	form.Set("sender", s.sender)
	form.Set("mobile", phone)
	form.Set("sms", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Ensure HTTPSender implements Sender
var _ messaging.Sender = (*HTTPSender)(nil)

// LoggingSender logs messages instead of delivering them. Used in
// development and when no gateway is configured.
type LoggingSender struct {
	logger *zap.Logger
}

// NewLoggingSender creates a new LoggingSender
func NewLoggingSender(logger *zap.Logger) *LoggingSender {
	return &LoggingSender{logger: logger.Named("sms")}
}

// Send logs the message that would have been sent
func (s *LoggingSender) Send(_ context.Context, phone, text string) error {
	s.logger.Info("sms (not sent, messaging disabled)",
		zap.String("phone", phone),
		zap.String("text", text),
	)
	return nil
}

// Ensure LoggingSender implements Sender
var _ messaging.Sender = (*LoggingSender)(nil)
