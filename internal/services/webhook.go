package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type RevalidationRequest struct {
	Secret      string   `json:"secret"`
	SubdomainID string   `json:"subdomain_id"`
	Paths       []string `json:"paths"`
	Timestamp   string   `json:"timestamp"`
}

// RevalidationWebhook forwards cache revalidations to an external frontend
// or CDN so it can drop its own copies of the same pages.
type RevalidationWebhook struct {
	URL    string
	Secret string
	Client *http.Client
	Logger *zap.Logger
}

func NewRevalidationWebhook(url, secret string, logger *zap.Logger) *RevalidationWebhook {
	return &RevalidationWebhook{
		URL:    url,
		Secret: secret,
		Client: &http.Client{Timeout: 10 * time.Second},
		Logger: logger,
	}
}

// Notify sends in the background; failures are logged and never surfaced.
func (w *RevalidationWebhook) Notify(subdomainID string, paths []string) {
	if w.URL == "" {
		return
	}

	go func() {
		if err := w.Send(context.Background(), subdomainID, paths); err != nil {
			w.Logger.Warn("revalidation webhook failed",
				zap.String("subdomain_id", subdomainID),
				zap.Strings("paths", paths),
				zap.Error(err),
			)
			return
		}
		w.Logger.Debug("revalidation webhook delivered", zap.String("subdomain_id", subdomainID))
	}()
}

func (w *RevalidationWebhook) Send(ctx context.Context, subdomainID string, paths []string) error {
	payload := RevalidationRequest{
		Secret:      w.Secret,
		SubdomainID: subdomainID,
		Paths:       paths,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal revalidation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build revalidation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send revalidation webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("revalidation webhook returned status %d", resp.StatusCode)
	}

	return nil
}
