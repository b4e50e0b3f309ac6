// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the fetchers.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/pdiddy/wbclaims/internal/logger"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps a server-supplied Retry-After delay.
var MaxRetryAfter = 2 * time.Minute

const defaultMaxRetries = 5

// Retryable reports whether status signals a transient overload: 429 (Too
// Many Requests) or 503 (Service Unavailable, sent by the Wikibase API
// under maxlag).
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request and retries retryable responses with
// exponential backoff. The delay starts at RetryBaseDelay and doubles each
// attempt, unless the response carries a Retry-After header in seconds,
// which is honored up to MaxRetryAfter.
//
// When maxRetries is 0 the default (5) is used. On each retry the response
// body is drained and closed before sleeping. If the context is cancelled
// during a backoff wait the function returns ctx.Err(). After exhausting
// retries the last response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := retryDelay(resp.Header.Get("Retry-After"), attempt)
		logger.Warnw("server busy, retrying",
			logger.FieldURL, req.URL.Redacted(),
			logger.FieldStatus, resp.StatusCode,
			logger.FieldDelay, backoff.String(),
			logger.FieldAttempt, attempt+1)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func retryDelay(retryAfter string, attempt int) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, MaxRetryAfter)
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
