package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"chat-relay/errors"
)

// Client speaks the external store's single query/mutation endpoint:
// POST {query, variables} with an optional bearer token, answered by
// {data} on success or {errors} on failure. Every call is atomic from the
// relay's point of view; there is no partial-success handling.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(log *slog.Logger, endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Execute runs one query or mutation and unmarshals the data payload into
// out. Transport failures and store-reported errors both collapse into
// ErrUpstream; callers decide whether a null entity means ErrNotFound.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, token string, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal store request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("store call failed", "error", err)
		return fmt.Errorf("%w: %v", errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("store call returned unexpected status", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", errors.ErrUpstream, resp.StatusCode)
	}

	var payload graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("%w: decode response: %v", errors.ErrUpstream, err)
	}

	if len(payload.Errors) > 0 {
		c.log.Error("store reported errors", "first", payload.Errors[0].Message, "count", len(payload.Errors))
		return fmt.Errorf("%w: %s", errors.ErrUpstream, payload.Errors[0].Message)
	}

	if out != nil {
		if err := json.Unmarshal(payload.Data, out); err != nil {
			return fmt.Errorf("%w: unmarshal data: %v", errors.ErrUpstream, err)
		}
	}
	return nil
}
