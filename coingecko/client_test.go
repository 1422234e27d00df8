package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// recordingHandler captures status callbacks for assertions
type recordingHandler struct {
	statuses []string
	retries  int
}

func (h *recordingHandler) OnRequest(status string) { h.statuses = append(h.statuses, status) }
func (h *recordingHandler) OnRetry()                { h.retries++ }

func testRetryOptions() RetryOptions {
	opts := DefaultRetryOptions()
	opts.BaseBackoff = 5 * time.Millisecond
	return opts
}

func newTestRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

func TestExecuteRequest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	handler := &recordingHandler{}
	client := NewHTTPClientWithRetries(testRetryOptions(), handler, nil)

	body, duration, err := client.ExecuteRequest(newTestRequest(t, server.URL))

	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.Greater(t, duration, time.Duration(0))
	assert.Equal(t, []string{"success"}, handler.statuses)
	assert.Zero(t, handler.retries)
}

func TestExecuteRequest_RetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	handler := &recordingHandler{}
	client := NewHTTPClientWithRetries(testRetryOptions(), handler, nil)

	_, _, err := client.ExecuteRequest(newTestRequest(t, server.URL))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 2, handler.retries)
}

func TestExecuteRequest_RetriesOnRateLimit(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	handler := &recordingHandler{}
	client := NewHTTPClientWithRetries(testRetryOptions(), handler, nil)

	_, _, err := client.ExecuteRequest(newTestRequest(t, server.URL))

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Contains(t, handler.statuses, "rate_limited")
}

func TestExecuteRequest_FailsFastOnClientError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"coin not found"}`))
	}))
	defer server.Close()

	client := NewHTTPClientWithRetries(testRetryOptions(), nil, nil)

	_, _, err := client.ExecuteRequest(newTestRequest(t, server.URL))

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "4xx responses other than 429 must not be retried")
	assert.Contains(t, err.Error(), "404")
}

func TestExecuteRequest_AllAttemptsExhausted(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	opts := testRetryOptions()
	opts.MaxRetries = 3
	client := NewHTTPClientWithRetries(opts, nil, nil)

	_, _, err := client.ExecuteRequest(newTestRequest(t, server.URL))

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "all 3 attempts failed")
}

func TestExecuteRequest_RequestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	opts := testRetryOptions()
	opts.MaxRetries = 1
	opts.RequestTimeout = 50 * time.Millisecond
	client := NewHTTPClientWithRetries(opts, nil, nil)

	_, _, err := client.ExecuteRequest(newTestRequest(t, server.URL))

	assert.Error(t, err)
}

func TestExecuteRequest_HonorsRateLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// 20 requests/second, burst 1: the second request must wait ~50ms
	limiter := rate.NewLimiter(rate.Limit(20), 1)
	client := NewHTTPClientWithRetries(testRetryOptions(), nil, limiter)

	start := time.Now()
	for i := 0; i < 2; i++ {
		_, _, err := client.ExecuteRequest(newTestRequest(t, server.URL))
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestExecuteRequest_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	client := NewHTTPClientWithRetries(testRetryOptions(), nil, rate.NewLimiter(rate.Inf, 1))

	_, _, err = client.ExecuteRequest(req)
	assert.Error(t, err)
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	base := 100 * time.Millisecond

	assert.Equal(t, base, calculateBackoffWithJitter(base, 0))

	// Attempt 2 doubles the base; jitter adds at most half of that again
	backoff := calculateBackoffWithJitter(base, 2)
	assert.GreaterOrEqual(t, backoff, 200*time.Millisecond)
	assert.Less(t, backoff, 300*time.Millisecond)
}

func TestIsRetryableStatus(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 504}
	for _, code := range retryable {
		assert.True(t, isRetryableStatus(code), "status %d should be retryable", code)
	}

	notRetryable := []int{400, 401, 403, 404, 422}
	for _, code := range notRetryable {
		assert.False(t, isRetryableStatus(code), "status %d should not be retryable", code)
	}
}
