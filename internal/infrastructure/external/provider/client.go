// Package provider implements the completion provider API client.
// This package handles the single outbound call the assistant makes per
// request: sending the assembled message list and normalizing the
// heterogeneous response body into plain text.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the completion provider client.
type ClientConfig struct {
	// BaseURL is the provider base URL, e.g. "https://api.deepseek.com".
	BaseURL string

	// APIKey is the bearer credential.
	APIKey string

	// Model is the completion model identifier.
	Model string

	// Timeout is the HTTP request timeout. One attempt per call, no retries.
	Timeout time.Duration

	// Generation parameters.
	Temperature float64
	TopP        float64
	MaxTokens   int

	// Extractors overrides the response normalization priority order.
	// Nil selects DefaultExtractors.
	Extractors []Extractor

	// Logger for structured logging.
	Logger *slog.Logger

	// Debug enables request logging.
	Debug bool
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL, apiKey string) ClientConfig {
	return ClientConfig{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       "deepseek-chat",
		Timeout:     30 * time.Second,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   1024,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the completion provider API client.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new provider client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: config.Logger,
	}
}

// Complete sends the message list to the completion endpoint and returns the
// normalized result. Failures are typed: *DNSError when the provider host
// cannot be resolved, *StatusError when the provider answered with an error
// status, a plain error for any other local failure.
func (c *Client) Complete(ctx context.Context, messages []Message) (*Result, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		TopP:        c.config.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	fullURL := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	if c.config.Debug {
		c.logger.Debug("completion request", "model", c.config.Model, "messages", len(messages))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if host, ok := c.dnsFailure(err); ok {
			return nil, &DNSError{Host: host, Err: err}
		}
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &StatusError{
			Status: resp.StatusCode,
			Detail: errorDetail(respBody, resp.StatusCode),
		}
	}

	return &Result{
		Text: ExtractText(respBody, c.config.Extractors),
		Raw:  respBody,
	}, nil
}

// dnsFailure reports whether err is a name-resolution failure and returns
// the host that failed. Resolution failures can surface as a typed
// *net.DNSError or embedded in a generic transport error message, so both
// are checked.
func (c *Client) dnsFailure(err error) (string, bool) {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		host := dnsErr.Name
		if host == "" {
			host = c.host()
		}
		return host, true
	}

	msg := err.Error()
	if strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "server misbehaving") ||
		strings.Contains(msg, "name resolution") {
		return c.host(), true
	}

	return "", false
}

// host returns the hostname of the configured base URL.
func (c *Client) host() string {
	u, err := url.Parse(c.config.BaseURL)
	if err != nil || u.Hostname() == "" {
		return c.config.BaseURL
	}
	return u.Hostname()
}

// errorDetail pulls a displayable message out of a provider error payload,
// falling back to the raw body or a generic status line.
func errorDetail(body []byte, status int) string {
	var payload providerErrorBody
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != nil && payload.Error.Message != "" {
			return payload.Error.Message
		}
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}

	if detail := strings.TrimSpace(string(body)); detail != "" {
		return detail
	}
	return fmt.Sprintf("provider error: status %d", status)
}
