package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/automation-market/marketplace/internal/domain"
)

// SecurityForwarder передает события безопасности во внешний журнал
type SecurityForwarder interface {
	Forward(ctx context.Context, ev *domain.SecurityEvent) error
}

// HTTPSecurityForwarder реализует SecurityForwarder через HTTP POST
type HTTPSecurityForwarder struct {
	endpoint   string
	httpClient *http.Client
}

// NewSecurityForwarder создает новый SecurityForwarder
func NewSecurityForwarder(endpoint string) *HTTPSecurityForwarder {
	return &HTTPSecurityForwarder{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Forward отправляет событие в журнал
func (c *HTTPSecurityForwarder) Forward(ctx context.Context, ev *domain.SecurityEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("security forwarder: failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("security forwarder: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("security forwarder: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil

	case resp.StatusCode == http.StatusTooManyRequests:
		// Журнал просит повторить позже
		seconds, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return NewRateLimitError(time.Duration(seconds) * time.Second)

	default:
		return fmt.Errorf("security forwarder: unexpected status code: %d", resp.StatusCode)
	}
}
