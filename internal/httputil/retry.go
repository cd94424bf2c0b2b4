// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil retries HTTP requests that the NLP service rejects with
// 429 Too Many Requests.
package httputil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

var errBodyNotReplayable = errors.New("request body cannot be replayed for retry")

// DoWithRetry executes req with client and retries on HTTP 429 with
// exponential backoff starting at RetryBaseDelay and doubling each attempt.
//
// When maxRetries is 0 the default (3) is used. Request bodies are replayed
// through req.GetBody. If the context is cancelled during a backoff wait the
// function returns ctx.Err(). After exhausting retries the last 429 response
// is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	return retry(ctx, req, maxRetries, func(r *http.Request) (*http.Response, error) {
		return client.Do(r)
	})
}

// RetryTransport is an http.RoundTripper that applies the DoWithRetry
// policy to every request. It lets SDK clients that accept an *http.Client
// share the same rate-limit handling.
type RetryTransport struct {
	// Base performs the actual round trip. Nil uses http.DefaultTransport.
	Base http.RoundTripper

	// MaxRetries is the number of retries on 429. Zero uses the default (3).
	MaxRetries int
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return retry(req.Context(), req, t.MaxRetries, base.RoundTrip)
}

func retry(ctx context.Context, req *http.Request, maxRetries int, do func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		r, err := replay(ctx, req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := do(r)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		slog.Debug("rate limited, retrying", "url", req.URL.String(), "backoff", backoff, "attempt", attempt+1, "max", maxRetries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// replay returns a copy of req for the given attempt with a fresh body.
func replay(ctx context.Context, req *http.Request, attempt int) (*http.Request, error) {
	r := req.Clone(ctx)
	if attempt == 0 || req.Body == nil || req.Body == http.NoBody {
		return r, nil
	}
	if req.GetBody == nil {
		return nil, errBodyNotReplayable
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	r.Body = body
	return r, nil
}
