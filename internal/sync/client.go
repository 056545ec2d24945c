// Package sync pushes pipeline action lists to a remote backend. Sync is
// best-effort: a failure is surfaced to the caller for logging only and
// must never undo or block the local mutation that triggered it.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote pipeline backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a sync client for the given backend base URL.
func New(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// syncRequest is the wire form of one pipeline sync.
type syncRequest struct {
	PipelineID string               `json:"pipeline_id"`
	Actions    []transformer.Action `json:"actions"`
}

// SyncPipeline uploads a pipeline's action list. The API key is passed per
// call rather than held by the client, so one client can serve concurrent
// requests with different credentials.
func (c *Client) SyncPipeline(ctx context.Context, apiKey, pipelineID string, actions []transformer.Action) error {
	body, err := json.Marshal(syncRequest{PipelineID: pipelineID, Actions: actions})
	if err != nil {
		return fmt.Errorf("encode sync request: %w", err)
	}

	url := c.baseURL + "/api/pipelines/" + pipelineID + "/sync"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sync pipeline %s: %w", pipelineID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sync pipeline %s: backend returned %s", pipelineID, resp.Status)
	}
	c.logger.Debug("pipeline synced", "pipeline_id", pipelineID, "actions", len(actions))
	return nil
}

// SyncPipelineAsync dispatches SyncPipeline on its own goroutine and logs
// the outcome. Fire-and-forget: the caller's success path never waits on
// it.
func (c *Client) SyncPipelineAsync(apiKey, pipelineID string, actions []transformer.Action) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := c.SyncPipeline(ctx, apiKey, pipelineID, actions); err != nil {
			c.logger.Warn("pipeline sync failed", "pipeline_id", pipelineID, "error", err)
		}
	}()
}
