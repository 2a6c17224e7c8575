package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Muizzyranking/drf-auth/pkg/httpclient"
)

// APIConfig holds settings for an HTTP mail provider.
type APIConfig struct {
	URL    string
	APIKey string
}

// APIMailer delivers mail through an HTTP provider behind a circuit breaker,
// so a flapping provider fails fast instead of tying up signup requests.
type APIMailer struct {
	client *httpclient.CircuitBreakerClient
	cfg    APIConfig
}

// NewAPIMailer creates an HTTP-API-backed mailer.
func NewAPIMailer(cfg APIConfig, logger *slog.Logger) *APIMailer {
	client := httpclient.New(httpclient.Config{
		Timeout:         10 * time.Second,
		MaxRetries:      2,
		RetryWaitMin:    time.Second,
		RetryWaitMax:    3 * time.Second,
		MaxConnsPerHost: 10,
	})

	return &APIMailer{
		client: httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("mail-api"), logger),
		cfg:    cfg,
	}
}

// Name implements Mailer.
func (m *APIMailer) Name() string { return DriverAPI }

type apiSendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send implements Mailer.
func (m *APIMailer) Send(ctx context.Context, msg *Message) error {
	payload, err := json.Marshal(apiSendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	}

	resp, err := m.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("mail api send to %s: %w", msg.To, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, "mail-api")
	}

	return nil
}
