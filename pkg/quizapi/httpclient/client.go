package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizedit/internal/quiz"
	"quizedit/pkg/quizapi"
)

// Client implements quizapi.API against a remote quiz server.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithToken sends the token as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New constructs a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch loads the quiz stored under name.
func (c *Client) Fetch(ctx context.Context, name string) (quiz.Document, error) {
	body, status, err := c.do(ctx, http.MethodGet, quizPath(name), nil)
	if err != nil {
		return quiz.Document{}, fmt.Errorf("fetch quiz: %w", err)
	}
	if !isSuccess(status) {
		return quiz.Document{}, fmt.Errorf("fetch quiz: %w", decodeHTTPError(status, body))
	}
	var doc quiz.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return quiz.Document{}, fmt.Errorf("fetch quiz: decode response: %w", err)
	}
	return doc, nil
}

// Create stores a new quiz.
func (c *Client) Create(ctx context.Context, doc quiz.Document) error {
	return c.send(ctx, "create quiz", http.MethodPost, quizapi.CollectionPath, doc)
}

// Update replaces the quiz stored under name.
func (c *Client) Update(ctx context.Context, name string, doc quiz.Document) error {
	return c.send(ctx, "update quiz", http.MethodPut, quizPath(name), doc)
}

func (c *Client) send(ctx context.Context, op, method, path string, doc quiz.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}
	body, status, err := c.do(ctx, method, path, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !isSuccess(status) {
		return fmt.Errorf("%s: %w", op, decodeHTTPError(status, body))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("quiz api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, 0, err
	}
	defer resp.Body.Close()
	c.logger.Debug("quiz api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func quizPath(name string) string {
	return quizapi.CollectionPath + "/" + escapeSegment(name)
}

// escapeSegment percent-encodes every byte except A-Z a-z 0-9 and - _ . ! ~ * ' ( ).
// Sub-delimiters such as + & = : @ $ , are encoded so the key reaches the server
// unchanged.
func escapeSegment(name string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeHTTPError(status int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return &quizapi.HTTPError{Status: status, Reason: resp.Error}
	}
	return &quizapi.HTTPError{Status: status}
}
