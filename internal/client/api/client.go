// Package api provides the HTTP client for the recipesai REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource supplies the bearer token for authenticated requests.
// Implemented by the token store.
type TokenSource interface {
	Token() string
}

// APIError is returned for any non-2xx response. Body holds the parsed
// response body when it was valid JSON, nil otherwise.
type APIError struct {
	Status  int
	Body    json.RawMessage
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the recipesai API. Requests always carry a JSON
// Content-Type; the bearer token comes from an explicit request option
// first, then the token source, and is omitted when neither has one.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

// Option configures a single request.
type Option func(*requestOptions)

type requestOptions struct {
	token    string
	hasToken bool
}

// WithToken overrides the token source for one request. An empty token
// forces an unauthenticated request.
func WithToken(tok string) Option {
	return func(o *requestOptions) {
		o.token = tok
		o.hasToken = true
	}
}

// NewClient creates an API client. tokens may be nil for a client that
// only makes unauthenticated calls.
func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		logger:     logger.Named("api-client"),
	}
}

// Do performs a request and returns the parsed JSON body. A body that is
// not valid JSON yields a nil result, not an error. Non-2xx responses
// return an *APIError carrying the status, the parsed body and a message
// taken from the body's error field, then its msg field, then a generic
// fallback.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, opts ...Option) (json.RawMessage, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	tok := o.token
	if !o.hasToken && c.tokens != nil {
		tok = c.tokens.Token()
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed json.RawMessage
	if json.Valid(raw) {
		parsed = json.RawMessage(raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("Request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &APIError{
			Status:  resp.StatusCode,
			Body:    parsed,
			Message: errorMessage(parsed, resp.StatusCode),
		}
	}

	return parsed, nil
}

func errorMessage(body json.RawMessage, status int) string {
	if body != nil {
		var fields struct {
			Error string `json:"error"`
			Msg   string `json:"msg"`
		}
		if err := json.Unmarshal(body, &fields); err == nil {
			if fields.Error != "" {
				return fields.Error
			}
			if fields.Msg != "" {
				return fields.Msg
			}
		}
	}
	return fmt.Sprintf("Request failed (%d)", status)
}
