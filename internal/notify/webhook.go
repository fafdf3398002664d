package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// WebhookSender posts codes to an external delivery service.
type WebhookSender struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewWebhookSender(url, apiKey string) *WebhookSender {
	return &WebhookSender{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

func (s *WebhookSender) SendCode(ctx context.Context, destination, code string) error {
	payload, err := json.Marshal(map[string]string{
		"to":   destination,
		"code": code,
	})
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to dispatch code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("dispatch failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
