package geocoding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Options tune the HTTP behaviour shared by the remote geocoders.
type Options struct {
	// Timeout bounds a single request. Zero means 10s.
	Timeout time.Duration
	// MaxAttempts bounds retries of transient failures. Zero or one means a
	// single attempt.
	MaxAttempts int
	// Backoff is the delay before the second attempt; it doubles after each
	// retry. Zero means 200ms.
	Backoff time.Duration
	// HTTPClient overrides the default client (Timeout is then ignored).
	HTTPClient *http.Client
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type httpClient struct {
	session     *http.Client
	maxAttempts int
	backoff     time.Duration
}

func newHTTPClient(opts Options) httpClient {
	session := opts.HTTPClient
	if session == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		session = &http.Client{Timeout: timeout}
	}

	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	return httpClient{session: session, maxAttempts: attempts, backoff: backoff}
}

func (c httpClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) using exponential backoff while respecting context cancellation.
func (c httpClient) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := c.backoff

	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) || attempt == c.maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
