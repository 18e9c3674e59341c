package vend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vend-sync/core/metrics"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to one Vend tenant. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger

	concurrency int
	pageSize    int
	register    string

	payments  *lookupTable[string]
	registers *lookupTable[string]
	products  *lookupTable[string]
	outlets   *lookupTable[map[string]any]
	discount  *lookupTable[string]
	shipping  *lookupTable[string]
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a client for the configured tenant.
func NewClient(cfg Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimitPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimitPerMinute)), cfg.RateLimitPerMinute)
	}

	c := &Client{
		baseURL:     cfg.URL(),
		token:       cfg.Token,
		http:        &http.Client{Timeout: time.Duration(timeout) * time.Second},
		limiter:     limiter,
		logger:      logger.With(zap.String("vend_site", cfg.SiteID)),
		concurrency: cfg.Concurrency,
		pageSize:    cfg.PageSize,
		register:    cfg.Register,
	}
	if cfg.BreakerFailures > 0 {
		c.breaker = newBreaker(cfg, c.logger)
	}
	for _, opt := range opts {
		opt(c)
	}

	c.payments = newLookupTable(c.loadPaymentTypes)
	c.registers = newLookupTable(c.loadRegisters)
	c.products = newLookupTable(c.loadProductHandles)
	c.outlets = newLookupTable(c.loadOutlets)
	c.discount = newLookupTable(c.loadSpecialProduct("vend-discount"))
	c.shipping = newLookupTable(c.loadSpecialProduct("shipping"))

	return c, nil
}

// Concurrency is the fan-out configured for line-item batches.
func (c *Client) Concurrency() int {
	return c.concurrency
}

// Register is the configured register name.
func (c *Client) Register() string {
	return c.register
}

// Request issues a JSON call and decodes the response. It returns a
// *TransportError when no decodable response was obtained; API level
// failures are left for Validate.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s %s body: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, query, payload, "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload io.Reader, contentType string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	if c.breaker == nil {
		return c.send(ctx, method, path, query, payload, contentType)
	}

	// Only transport failures trip the breaker; answers carrying API errors
	// still prove Vend is reachable.
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.send(ctx, method, path, query, payload, contentType)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	if err != nil {
		return nil, err
	}
	return out.(*Response), nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload io.Reader, contentType string) (*Response, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resource := resourceOf(path)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordRequest(method, resource, 0, time.Since(start))
		c.logger.Warn("Vend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	metrics.RecordRequest(method, resource, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug("Vend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	decoded, err := decodeBody(raw)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	return &Response{StatusCode: resp.StatusCode, Body: decoded, Raw: raw}, nil
}

// postMultipart uploads a single file field.
func (c *Client) postMultipart(ctx context.Context, path, field, filename string, content io.Reader) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to copy form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
}

func decodeBody(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("malformed JSON body: %w", err)
	}
	switch v := decoded.(type) {
	case map[string]any:
		return v, nil
	default:
		return map[string]any{"data": v}, nil
	}
}

// resourceOf reduces a request path to its resource name for metric labels,
// e.g. "2.0/products/abc/inventory" -> "products".
func resourceOf(path string) string {
	path = strings.TrimLeft(path, "/")
	path = strings.TrimPrefix(path, "2.0/")
	if i := strings.IndexAny(path, "/?"); i >= 0 {
		path = path[:i]
	}
	return path
}

func escape(id string) string {
	return url.PathEscape(id)
}

func newBreaker(cfg Config, logger *zap.Logger) *gobreaker.CircuitBreaker {
	cooldown := time.Duration(cfg.BreakerCooldownSeconds) * time.Second
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	threshold := uint32(cfg.BreakerFailures)

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "vend:" + cfg.SiteID,
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Calls cancelled by their caller do not count toward tripping.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Vend circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
