// Package upbank is a client for the Up Bank REST API (JSON:API).
// Every call is authenticated with the caller's personal access token; the
// client itself holds no credentials.
package upbank

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"upboard/internal/domain"
	"upboard/internal/infra/observability"
	"upboard/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("upbank")

// Client wraps HTTP calls to the Up API with retry, circuit breaking,
// tracing and logging.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates an Up API client.
func NewClient(httpClient *http.Client, baseURL string, pageSize int, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		pageSize:   pageSize,
		cb:         cb,
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// BreakerIsSuccessful decides which errors count against the Up API circuit
// breaker. A rejected token is one user's problem, not an outage.
func BreakerIsSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var invalid *domain.ErrInvalidToken
	return errors.As(err, &invalid) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// get performs one authenticated GET and decodes the JSON body into out.
// 401 is permanent (retrying a bad token cannot help); other non-2xx
// statuses are left retryable.
func (c *Client) get(ctx context.Context, token, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return resilience.Permanent(&domain.ErrInvalidToken{})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("up api: non-2xx response",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("up api returned status %d", resp.StatusCode)
	}

	return decodeBody(resp, out)
}

// call runs get under the circuit breaker and retry policy, then maps
// failures onto the domain error taxonomy.
func (c *Client) call(ctx context.Context, operation, token, url string, out any) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			return c.get(ctx, token, url, out)
		})
	})
	if err == nil {
		return nil
	}

	var invalid *domain.ErrInvalidToken
	if errors.As(err, &invalid) {
		return invalid
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: "up-api"}
	}

	c.metrics.IncrUpstreamError(operation)
	return &domain.ErrUpstream{Operation: operation, Err: err}
}
