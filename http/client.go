package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxRetries is the default number of retry attempts.
const DefaultMaxRetries = 3

// DefaultRetryWait is the default initial wait between retries.
const DefaultRetryWait = 1 * time.Second

// Client provides authenticated HTTP access to a remote JSON API.
type Client struct {
	client      *http.Client
	baseURL     string
	serviceName string
	maxRetries  int
	retryWait   time.Duration
	logger      *slog.Logger

	// beforeRequest is called before each request (for auth headers, etc.)
	beforeRequest func(req *http.Request)
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	Client        *http.Client
	BaseURL       string
	ServiceName   string
	MaxRetries    int
	RetryWait     time.Duration
	Logger        *slog.Logger
	BeforeRequest func(req *http.Request)
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:        cfg.Client,
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:   cfg.ServiceName,
		maxRetries:    cfg.MaxRetries,
		retryWait:     cfg.RetryWait,
		logger:        cfg.Logger,
		beforeRequest: cfg.BeforeRequest,
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryWait <= 0 {
		c.retryWait = DefaultRetryWait
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Logger returns the logger the client was configured with.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Request executes an HTTP request with retries for transient errors.
// The request body, if any, is JSON-encoded. Query parameters are appended
// to the path when non-empty.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	contentType := ""
	if payload != nil {
		contentType = "application/json"
	}

	return c.do(ctx, method, path, query, payload, contentType)
}

// RequestRaw executes an HTTP request with a pre-assembled body and content
// type (used for multipart uploads).
func (c *Client) RequestRaw(ctx context.Context, method, path string, body []byte, contentType string) (*http.Response, error) {
	return c.do(ctx, method, path, nil, body, contentType)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	requestID := newRequestID()

	var lastErr error
	for attempt := range c.maxRetries {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-Id", requestID)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		// Apply auth headers via callback
		if c.beforeRequest != nil {
			c.beforeRequest(req)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries-1 {
				if waitErr := c.waitForRetry(ctx, c.retryWait*time.Duration(1<<attempt)); waitErr != nil {
					return nil, waitErr
				}
				continue
			}
			return nil, fmt.Errorf("%s request failed: %w", c.serviceName, err)
		}

		// Retry on rate limit or server errors
		if (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) && attempt < c.maxRetries-1 {
			wait := c.retryAfter(resp, attempt)
			resp.Body.Close()
			c.logger.Debug("retrying request",
				"service", c.serviceName,
				"path", path,
				"status", resp.StatusCode,
				"attempt", attempt+1,
				"request_id", requestID,
			)
			if waitErr := c.waitForRetry(ctx, wait); waitErr != nil {
				return nil, waitErr
			}
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	resp, err := c.Request(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// Post performs a POST request and decodes the response into result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	resp, err := c.Request(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// Patch performs a PATCH request and decodes the response into result.
func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	resp, err := c.Request(ctx, http.MethodPatch, path, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.Request(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, nil)
}

// PostMultipart submits a pre-assembled multipart body and decodes the
// response into result. No local size cap is applied; the remote service
// enforces its own limit, surfaced as ErrPayloadTooLarge.
func (c *Client) PostMultipart(ctx context.Context, path string, body []byte, contentType string, result any) error {
	resp, err := c.RequestRaw(ctx, http.MethodPost, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// GetRaw performs a GET request and returns the raw response body.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.Request(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.parseError(resp, path)
	}

	return io.ReadAll(resp.Body)
}

// StreamURL fetches an absolute URL (e.g. an attachment's download URL) and
// copies the response body to w. It returns the number of bytes written only
// after the full copy completes.
func (c *Client) StreamURL(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if c.beforeRequest != nil {
		c.beforeRequest(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s request failed: %w", c.serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, c.parseError(resp, rawURL)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("stream %s response: %w", c.serviceName, err)
	}
	return n, nil
}

// handleResponse checks status and decodes the response body.
func (c *Client) handleResponse(resp *http.Response, path string, result any) error {
	if resp.StatusCode >= 400 {
		return c.parseError(resp, path)
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", c.serviceName, err)
	}

	return nil
}

// parseError parses an error response into an APIError.
func (c *Client) parseError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		Endpoint:   path,
		RequestID:  resp.Header.Get("X-Request-Id"),
	}

	apiErr.Message, apiErr.VersionConflict = describeErrorBody(resp.StatusCode, body)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// describeErrorBody extracts a human-readable message from an error body and
// reports whether a 400 response is the service's stale-version rejection.
func describeErrorBody(status int, body []byte) (msg string, versionConflict bool) {
	var errResp struct {
		ErrorMessage string          `json:"_error_message"`
		Detail       string          `json:"detail"`
		Error        string          `json:"error"`
		Message      string          `json:"message"`
		Version      json.RawMessage `json:"version"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		switch {
		case errResp.ErrorMessage != "":
			msg = errResp.ErrorMessage
		case errResp.Detail != "":
			msg = errResp.Detail
		case errResp.Error != "":
			msg = errResp.Error
		case errResp.Message != "":
			msg = errResp.Message
		}

		if status == http.StatusBadRequest {
			// The service rejects stale writes either with a field error on
			// "version" or with a message naming the version mismatch.
			if len(errResp.Version) > 0 || strings.Contains(strings.ToLower(msg), "version") {
				versionConflict = true
				if msg == "" {
					msg = "version is invalid or the resource was concurrently modified"
				}
			}
		}
	}

	return msg, versionConflict
}

// retryAfter calculates the wait time before retrying a response.
func (c *Client) retryAfter(resp *http.Response, attempt int) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff
	return c.retryWait * time.Duration(1<<attempt)
}

// waitForRetry waits for the given duration or until the context is done.
func (c *Client) waitForRetry(ctx context.Context, wait time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// newRequestID generates a correlation ID attached to outgoing requests and
// echoed into APIError for log correlation.
func newRequestID() string {
	id, err := gonanoid.New()
	if err != nil {
		return ""
	}
	return id
}
