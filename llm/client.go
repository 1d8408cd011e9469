// Package llm provides a provider-agnostic client for text-generation APIs
// with outcome classification and deterministic backoff retry.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxResponseSize limits the response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// CannotGenerateMarker is the sentinel token the model returns instead of
// content when the source text is insufficient. Part of the prompt contract.
const CannotGenerateMarker = "[NELZE_ZPRACOVAT]"

// DefaultModel is the model used when none is configured.
const DefaultModel = "claude-sonnet-4-20250514"

// Client talks to one text-generation endpoint. Credentials are supplied per
// call, never read from the environment; the presentation layer owns them.
type Client struct {
	provider    Provider
	baseURL     string
	model       string
	httpClient  *http.Client
	retryConfig RetryConfig
	logger      *slog.Logger
}

// Request is one generation request.
type Request struct {
	// System carries the mode-specific writing instructions.
	System string

	// UserMessage is the assembled per-row payload, directives included.
	UserMessage string

	// MaxTokens limits the completion length. 0 uses the provider default.
	MaxTokens int
}

// Response is a successful generation.
type Response struct {
	// RequestID uniquely identifies the call for log correlation.
	RequestID string

	// Text is the raw generated text, before any post-processing.
	Text string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL overrides the provider's default endpoint.
func WithBaseURL(url string) Option {
	return func(client *Client) {
		client.baseURL = url
	}
}

// WithModel sets the model identifier sent to the provider.
func WithModel(model string) Option {
	return func(client *Client) {
		client.model = model
	}
}

// WithRetryConfig sets the retry schedule.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(client *Client) {
		client.retryConfig = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// New creates a client for the named provider. The provider must be
// registered (blank-import llm/providers).
func New(provider string, opts ...Option) (*Client, error) {
	p := GetProvider(provider)
	if p == nil {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	c := &Client{
		provider:    p,
		model:       DefaultModel,
		retryConfig: DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 180 * time.Second, // Allow time for long completions
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ValidateKey checks the credential format before any network call is made.
func ValidateKey(apiKey string) bool {
	return len(strings.TrimSpace(apiKey)) > 20
}

// Complete sends a generation request, retrying rate-limit and network
// failures with exponential backoff. onWait, if non-nil, fires before each
// backoff sleep. Auth, upstream and sentinel outcomes return immediately.
func (c *Client) Complete(ctx context.Context, apiKey string, req Request, onWait WaitFunc) (*Response, error) {
	requestID := uuid.New().String()

	var lastErr error
	for attempt := 0; ; attempt++ {
		resp, err := c.doRequest(ctx, apiKey, req)
		if err == nil {
			resp.RequestID = requestID
			return resp, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		if attempt >= c.retryConfig.MaxRetries {
			break
		}

		delay := c.retryConfig.Backoff(attempt)
		waitSeconds := int(math.Ceil(delay.Seconds()))
		if onWait != nil {
			onWait(waitSeconds, attempt+1, c.retryConfig.MaxRetries)
		}

		c.logger.Debug("request failed, backing off",
			"request_id", requestID,
			"attempt", attempt+1,
			"max_retries", c.retryConfig.MaxRetries,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("%w after %d retries: %w", ErrRetriesExhausted, c.retryConfig.MaxRetries, lastErr)
}

// doRequest executes a single HTTP exchange and classifies the outcome.
func (c *Client) doRequest(ctx context.Context, apiKey string, req Request) (*Response, error) {
	url := c.provider.BuildURL(c.baseURL)

	body, err := c.provider.BuildRequestBody(c.model, req.System, req.UserMessage, req.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.provider.SetHeaders(httpReq, apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// No response received at all.
		return nil, NewNetworkError(fmt.Errorf("HTTP request failed: %w", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, NewNetworkError(fmt.Errorf("read response body: %w", err))
	}

	switch {
	case httpResp.StatusCode == http.StatusTooManyRequests:
		return nil, NewRateLimitError(errors.New("rate limited by API (HTTP 429)"))
	case httpResp.StatusCode == http.StatusUnauthorized:
		return nil, NewAuthError(errors.New("invalid API key (HTTP 401)"))
	case httpResp.StatusCode < 200 || httpResp.StatusCode > 299:
		return nil, &UpstreamError{
			Status:  httpResp.StatusCode,
			Message: c.provider.ParseErrorMessage(respBody),
		}
	}

	text, err := c.provider.ParseResponse(respBody)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &UpstreamError{Message: "empty response from API"}
	}
	if strings.Contains(text, CannotGenerateMarker) {
		return nil, ErrCannotGenerate
	}

	return &Response{Text: text}, nil
}
