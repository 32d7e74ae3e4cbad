// Package webhook posts search queries to the answer endpoint.
package webhook

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	endpointEnvVar = "GYANAM_WEBHOOK_URL"
	envelopeEnvVar = "GYANAM_WEBHOOK_ENVELOPE"

	// DefaultEndpoint targets a local n8n instance.
	DefaultEndpoint = "http://localhost:5678/webhook/gyanam"

	defaultHTTPTimeout = 60 * time.Second
	maxBodyBytes       = 4 << 20
)

// ErrBodyTooLarge reports a reply longer than the client will read.
var ErrBodyTooLarge = errors.New("response body too large")

// Envelope names the JSON shape the query is wrapped in.
type Envelope string

const (
	// EnvelopeQuery posts {"query": "..."}.
	EnvelopeQuery Envelope = "query"
	// EnvelopeLegacy posts {"body": {"message": "..."}}, as older workflows expect.
	EnvelopeLegacy Envelope = "legacy"
)

// ParseEnvelope maps a configuration value to an Envelope. Blank means query.
func ParseEnvelope(value string) (Envelope, error) {
	switch Envelope(strings.ToLower(strings.TrimSpace(value))) {
	case "", EnvelopeQuery:
		return EnvelopeQuery, nil
	case EnvelopeLegacy:
		return EnvelopeLegacy, nil
	default:
		return "", fmt.Errorf("unknown request envelope %q (want %q or %q)", value, EnvelopeQuery, EnvelopeLegacy)
	}
}

// Config describes how to reach the webhook.
type Config struct {
	Endpoint   string
	Envelope   Envelope
	HTTPClient *http.Client
}

// New validates cfg and returns a client.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("webhook endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook endpoint: %w", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("webhook endpoint must be an absolute http(s) URL, got %q", endpoint)
	}
	envelope, err := ParseEnvelope(string(cfg.Envelope))
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: parsed.String(),
		envelope: envelope,
		client:   pickHTTPClient(cfg.HTTPClient),
	}, nil
}

// NewFromEnv fills blank fields from GYANAM_WEBHOOK_URL and
// GYANAM_WEBHOOK_ENVELOPE before calling New.
func NewFromEnv(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		if env := os.Getenv(endpointEnvVar); env != "" {
			cfg.Endpoint = env
		} else {
			cfg.Endpoint = DefaultEndpoint
		}
	}
	if cfg.Envelope == "" {
		cfg.Envelope = Envelope(os.Getenv(envelopeEnvVar))
	}
	return New(cfg)
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}
