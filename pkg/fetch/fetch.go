// Package fetch provides an HTTP client wrapper that retries transient
// failures with exponential backoff.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
	defaultTimeout     = 30 * time.Second
)

// Doer abstracts *http.Client for testing.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the final attempt yields an error status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

// Client issues HTTP requests with a bounded number of attempts. A response
// with a status below 400 counts as success; anything else is retried until
// the attempt budget runs out.
type Client struct {
	doer        Doer
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	logger      *slog.Logger
}

// NewClient builds a retrying client. Zero values fall back to 3 attempts,
// a 1s base delay and a default http.Client.
func NewClient(doer Doer, maxAttempts int, baseDelay time.Duration, logger *slog.Logger) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: defaultTimeout}
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}
	return &Client{
		doer:        doer,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		sleep:       sleepContext,
		logger:      logger.With("component", "fetch.client"),
	}
}

// Do runs build to produce a fresh request for each attempt and returns the
// first successful response. The caller owns the response body.
//
// The delay before the retry that follows attempt i is base<<i for an error
// status and base<<(i+1) for a transport failure; transport failures back off
// one step further.
func (c *Client) Do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.doer.Do(req.WithContext(ctx))
		if err != nil {
			lastErr = fmt.Errorf("request to %s failed: %w", req.URL, err)
			if attempt == c.maxAttempts-1 {
				return nil, lastErr
			}
			c.logger.Warn("transport failure, retrying", "url", req.URL.String(), "attempt", attempt, "error", err)
			if err := c.sleep(ctx, c.baseDelay<<(attempt+1)); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode < http.StatusBadRequest {
			return resp, nil
		}

		drainAndClose(resp.Body)
		lastErr = &StatusError{StatusCode: resp.StatusCode, URL: req.URL.String()}
		if attempt == c.maxAttempts-1 {
			return nil, lastErr
		}
		c.logger.Warn("error status, retrying", "url", req.URL.String(), "attempt", attempt, "status", resp.StatusCode)
		if err := c.sleep(ctx, c.baseDelay<<attempt); err != nil {
			return nil, err
		}
	}

	// Every final attempt returns above; this keeps exhaustion from ever
	// producing a nil response with a nil error.
	if lastErr == nil {
		lastErr = errors.New("retries exhausted without an outcome")
	}
	return nil, lastErr
}

// Get issues a retried GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.Do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	})
}

// PostJSON issues a retried POST request, re-encoding the body per attempt.
func (c *Client) PostJSON(ctx context.Context, url string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return c.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4<<10))
	_ = body.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
