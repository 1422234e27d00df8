package coingecko

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// StatusHandler receives the outcome of HTTP requests made by the client.
type StatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	MaxRetries        int
	BaseBackoff       time.Duration
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultRetryOptions returns default retry options: three attempts total
// with exponential backoff.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:        3,
		BaseBackoff:       1000 * time.Millisecond,
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPClientWithRetries wraps an HTTP client with retry capabilities and
// client-side rate limiting.
type HTTPClientWithRetries struct {
	client        *http.Client
	opts          RetryOptions
	statusHandler StatusHandler
	limiter       *rate.Limiter
}

// NewHTTPClientWithRetries creates a new client. handler and limiter may be
// nil, in which case no statuses are reported and no rate limiting applies.
func NewHTTPClientWithRetries(opts RetryOptions, handler StatusHandler, limiter *rate.Limiter) *HTTPClientWithRetries {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		client:        client,
		opts:          opts,
		statusHandler: handler,
		limiter:       limiter,
	}
}

// ExecuteRequest executes an HTTP request with retry logic. Transport errors
// and retryable statuses (429, 5xx) re-enter the loop; any other non-2xx
// response fails immediately. Returns the response body and the duration of
// the last attempt.
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) ([]byte, time.Duration, error) {
	var lastErr error

	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("%s: Retry %d/%d after error: %v",
				c.opts.LogPrefix, attempt, c.opts.MaxRetries-1, lastErr)

			if c.statusHandler != nil {
				c.statusHandler.OnRetry()
			}

			backoffDuration := calculateBackoffWithJitter(c.opts.BaseBackoff, attempt)
			select {
			case <-req.Context().Done():
				return nil, 0, req.Context().Err()
			case <-time.After(backoffDuration):
			}
		}

		// Rate limit before executing the request
		if c.limiter != nil {
			if err := c.limiter.Wait(req.Context()); err != nil {
				c.reportStatus("error")
				return nil, 0, fmt.Errorf("rate limiter wait failed: %w", err)
			}
		}

		requestStart := time.Now()
		resp, err := c.client.Do(req)
		requestDuration := time.Since(requestStart)

		if err != nil {
			lastErr = fmt.Errorf("request failed after %.2fs: %w", requestDuration.Seconds(), err)
			c.reportStatus("error")
			continue
		}

		body, err := readResponse(resp)
		resp.Body.Close()
		if err != nil {
			if isRetryableStatus(resp.StatusCode) {
				lastErr = err
				c.reportStatus("rate_limited")
				continue
			}

			c.reportStatus("error")
			return nil, requestDuration, err
		}

		c.reportStatus("success")
		return body, requestDuration, nil
	}

	return nil, 0, fmt.Errorf("all %d attempts failed, last error: %w",
		c.opts.MaxRetries, lastErr)
}

func (c *HTTPClientWithRetries) reportStatus(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}

// calculateBackoffWithJitter calculates backoff duration with jitter for retries
func calculateBackoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return baseBackoff
	}

	multiplier := uint(1) << uint(attempt-1)
	backoff := time.Duration(float64(baseBackoff) * float64(multiplier))
	jitter := time.Duration(rand.Int63n(int64(backoff / 2)))
	return backoff + jitter
}

// readResponse reads the body and turns non-2xx statuses into errors.
func readResponse(resp *http.Response) ([]byte, error) {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			return nil, fmt.Errorf("rate limit exceeded (status %d), retry after %s: %s",
				resp.StatusCode, retryAfter, string(body))
		}

		return nil, fmt.Errorf("API request failed with status %d: %s",
			resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	return body, nil
}

// isRetryableStatus determines if a given HTTP status code should trigger a retry
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}
