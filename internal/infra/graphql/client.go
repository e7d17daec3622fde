package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gqlbatch/internal/domain"
	"gqlbatch/internal/metrics"
)

// Client posts GraphQL documents to a single endpoint with a static
// bearer credential. It implements domain.Transport: one call, one
// round trip; the retry policy lives with the caller.
type Client struct {
	httpClient *http.Client
	uri        string
	token      string
}

// NewClient creates a transport for the given endpoint. A zero timeout
// means no client-side deadline beyond the transport's own defaults.
func NewClient(uri, token string, timeout time.Duration) domain.Transport {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		uri:        uri,
		token:      token,
	}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

// envelope captures only the top-level errors field; everything else in
// the response is opaque to this tool.
type envelope struct {
	Errors []json.RawMessage `json:"errors"`
}

// Send performs exactly one HTTP exchange. Any returned error is a
// transient transport failure; a GraphQL error payload inside a 2xx
// response comes back as a Response with HasErrors set.
func (c *Client) Send(ctx context.Context, op domain.Operation) (*domain.Response, error) {
	payload, err := json.Marshal(graphqlRequest{Query: op.Text})
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uri, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	metrics.AttemptsTotal.Inc()
	metrics.InFlight.Inc()
	resp, err := c.httpClient.Do(req)
	metrics.InFlight.Dec()
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, truncate(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed response body: %w", err)
	}

	return &domain.Response{Body: string(raw), HasErrors: len(env.Errors) > 0}, nil
}

func truncate(b []byte) string {
	const max = 256
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
