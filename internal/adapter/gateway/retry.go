// Package gateway holds the HTTP clients of the upstream statistics,
// central bank and consumer-behaviour sources.
package gateway

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// HTTPDoer executes HTTP requests. *http.Client and *RetryClient satisfy it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryClient wraps an HTTPDoer with a token-bucket rate limit and retries
// using exponential backoff with full jitter.
type RetryClient struct {
	client     HTTPDoer
	limiter    *rate.Limiter
	logger     *slog.Logger
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	minDelay   time.Duration
}

// RetryOption configures a RetryClient.
type RetryOption func(*RetryClient)

// WithRateLimit allows perSecond requests with a burst of one. Zero or less
// disables limiting.
func WithRateLimit(perSecond float64) RetryOption {
	return func(rc *RetryClient) {
		if perSecond > 0 {
			rc.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithBackoff overrides the backoff bounds.
func WithBackoff(base, ceiling time.Duration) RetryOption {
	return func(rc *RetryClient) {
		rc.baseDelay, rc.maxDelay = base, ceiling
		rc.minDelay = min(rc.minDelay, base)
	}
}

// WithRetryLogger sets the logger used for retry notices.
func WithRetryLogger(l *slog.Logger) RetryOption {
	return func(rc *RetryClient) { rc.logger = l }
}

// NewRetryClient wraps client. A nil client is an http.Client with a 10s
// timeout; maxRetries counts attempts after the first one (default 3).
func NewRetryClient(client HTTPDoer, maxRetries int, opts ...RetryOption) *RetryClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if maxRetries < 0 {
		maxRetries = 3
	}
	rc := &RetryClient{
		client:     client,
		logger:     slog.Default(),
		maxRetries: maxRetries,
		baseDelay:  500 * time.Millisecond,
		maxDelay:   10 * time.Second,
		minDelay:   100 * time.Millisecond,
	}
	for _, o := range opts {
		o(rc)
	}
	return rc
}

// Do retries 429, 5xx gateway statuses and transport errors. Client errors
// and context cancellation are returned at once. The last retryable
// response is returned as is so callers can inspect it.
func (rc *RetryClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	var lastErr error

	for attempt := 0; attempt <= rc.maxRetries; attempt++ {
		if ctx.Err() != nil {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, ctx.Err()
		}

		if attempt > 0 {
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("reset request body: %w", err)
				}
				req.Body = body
			}
			delay := rc.delay(attempt)
			rc.logger.Debug("retrying upstream request",
				slog.Int("attempt", attempt),
				slog.String("host", req.URL.Host),
				slog.String("path", req.URL.Path),
				slog.Duration("wait", delay))

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				if lastErr != nil {
					return nil, lastErr
				}
				return nil, ctx.Err()
			}
		}

		if rc.limiter != nil {
			if err := rc.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := rc.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}
		if !retryable(resp.StatusCode) || attempt == rc.maxRetries {
			return resp, nil
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("upstream returned retryable status %d", resp.StatusCode)
	}
	return nil, lastErr
}

// delay is random(0, min(maxDelay, baseDelay*2^(attempt-1))) with a floor.
func (rc *RetryClient) delay(attempt int) time.Duration {
	exp := float64(rc.baseDelay) * math.Pow(2, float64(attempt-1))
	if exp > float64(rc.maxDelay) {
		exp = float64(rc.maxDelay)
	}
	d := time.Duration(rand.Float64() * exp)
	if d < rc.minDelay {
		d = rc.minDelay
	}
	return d
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
