package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.resend.com/emails"

// Mailer delivers transactional mail. Handlers depend on the interface so
// tests can capture sends without network access.
type Mailer interface {
	SendVerification(ctx context.Context, to, verifyURL string) error
}

// ResendMailer posts through the Resend HTTP API.
type ResendMailer struct {
	apiKey   string
	from     string
	appName  string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewResendMailer(apiKey, from, appName string, logger *slog.Logger) *ResendMailer {
	return &ResendMailer{
		apiKey:   apiKey,
		from:     from,
		appName:  appName,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// WithEndpoint overrides the API endpoint. Used in tests.
func (m *ResendMailer) WithEndpoint(endpoint string) *ResendMailer {
	m.endpoint = endpoint
	return m
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) SendVerification(ctx context.Context, to, verifyURL string) error {
	html := fmt.Sprintf(
		"<h1>Welcome to %s!</h1>"+
			"<p>Please click the link below to verify your email address:</p>"+
			`<a href="%s">Verify Email</a>`+
			"<p>This link will expire in 24 hours.</p>",
		m.appName, verifyURL,
	)

	body, err := json.Marshal(sendRequest{
		From:    fmt.Sprintf("%s <%s>", m.appName, m.from),
		To:      []string{to},
		Subject: "Verify your email address",
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		m.logger.Error("mail delivery rejected", "status", resp.StatusCode, "body", string(detail))
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	return nil
}

// NoopMailer drops mail on the floor. Used when no API key is configured so
// local development does not require a mail account.
type NoopMailer struct {
	logger *slog.Logger
}

func NewNoopMailer(logger *slog.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) SendVerification(ctx context.Context, to, verifyURL string) error {
	m.logger.Info("mail delivery disabled, skipping verification email", "to", to, "url", verifyURL)
	return nil
}
