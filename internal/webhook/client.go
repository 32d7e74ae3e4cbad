package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// Response is a successful (2xx) webhook reply.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// StatusError reports a non-2xx reply. Body is kept for diagnostics.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook error: %s", e.Status)
	}
	return fmt.Sprintf("webhook error: %s (%s)", e.Status, e.Body)
}

// NetworkError reports a request that never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("webhook unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client posts queries to a single endpoint.
type Client struct {
	endpoint string
	envelope Envelope
	client   *http.Client
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Envelope returns the request shape in use.
func (c *Client) Envelope() Envelope {
	return c.envelope
}

// Ask posts query and returns the raw reply.
func (c *Client) Ask(ctx context.Context, query string) (*Response, error) {
	buf, err := json.Marshal(c.payload(query))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[webhook] %s returned %s (%d bytes)", c.endpoint, resp.Status, len(body))
		return nil, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	if len(body) > maxBodyBytes {
		log.Printf("[webhook] %s reply exceeds %d bytes", c.endpoint, maxBodyBytes)
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, maxBodyBytes)
	}
	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *Client) payload(query string) any {
	if c.envelope == EnvelopeLegacy {
		return map[string]any{
			"body": map[string]string{"message": query},
		}
	}
	return map[string]string{"query": query}
}
