package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client delivers audit events to the remote sink over HTTP with a bearer
// token. Transport and auth failures are swallowed after local logging;
// only validation failures surface to the caller.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a sink client. An empty token is tolerated: every
// delivery is then dropped with a local log line, matching the sink's
// best-effort contract.
func NewClient(endpoint, token string, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Send validates and delivers one event. A validation failure is returned;
// any delivery failure is logged locally and swallowed.
func (c *Client) Send(ctx context.Context, event *Event) error {
	event.Normalize()

	if err := event.Validate(); err != nil {
		return err
	}

	if c.token == "" {
		c.logger.Warn("audit sink token missing, dropping event",
			zap.String("message", event.Message),
		)

		return nil
	}

	if err := c.post(ctx, event); err != nil {
		c.logger.Warn("audit sink delivery failed",
			zap.String("message", event.Message),
			zap.Error(err),
		)
	}

	return nil
}

func (c *Client) post(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}

	return nil
}
