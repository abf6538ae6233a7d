package taiga

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	taigahttp "github.com/taigaflow/taiga-mcp/http"
)

// apiPrefix is prepended to every endpoint path.
const apiPrefix = "/api/v1"

// Client provides access to the Taiga REST API.
type Client struct {
	cfg      *Config
	rest     *taigahttp.Client
	logger   *slog.Logger
	maxPages int
}

// ClientOption configures the client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithLogger sets the logger used by the client and its transport.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a new Taiga client.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &clientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := options.httpClient
	if httpClient == nil {
		timeout := cfg.HTTP.Timeout
		if timeout == 0 {
			timeout = taigahttp.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	scheme := "Bearer"
	if cfg.authType() == AuthApplication {
		scheme = "Application"
	}
	token := cfg.Auth.Token

	c := &Client{
		cfg:      cfg,
		logger:   logger,
		maxPages: cfg.MaxPages,
		rest: taigahttp.NewClient(taigahttp.ClientConfig{
			Client:      httpClient,
			BaseURL:     cfg.URL,
			ServiceName: "taiga",
			MaxRetries:  cfg.HTTP.MaxRetries,
			RetryWait:   cfg.HTTP.RetryWait,
			Logger:      logger,
			BeforeRequest: func(req *http.Request) {
				req.Header.Set("Authorization", scheme+" "+token)
			},
		}),
	}

	warnIfTokenExpiring(logger, token)

	return c, nil
}

// apiPath returns the full API path for the given endpoint.
func (c *Client) apiPath(endpoint string) string {
	return apiPrefix + endpoint
}

// get performs a GET against an API endpoint.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result any) error {
	return c.rest.Get(ctx, c.apiPath(endpoint), query, result)
}

// post performs a POST against an API endpoint.
func (c *Client) post(ctx context.Context, endpoint string, body, result any) error {
	return c.rest.Post(ctx, c.apiPath(endpoint), body, result)
}

// patch performs a PATCH against an API endpoint.
func (c *Client) patch(ctx context.Context, endpoint string, body, result any) error {
	return c.rest.Patch(ctx, c.apiPath(endpoint), body, result)
}

// delete performs a DELETE against an API endpoint.
func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.rest.Delete(ctx, c.apiPath(endpoint))
}

// listPages drives the pagination engine over a listing endpoint, carrying
// the caller's query parameters plus an incrementing page number.
func listPages[T any](ctx context.Context, c *Client, endpoint string, query url.Values) ([]T, error) {
	fetch := func(ctx context.Context, page int) (json.RawMessage, error) {
		q := url.Values{}
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("page", strconv.Itoa(page))
		return c.rest.GetRaw(ctx, c.apiPath(endpoint), q)
	}

	return taigahttp.CollectAs[T](ctx, fetch, c.maxPages, c.logger)
}
