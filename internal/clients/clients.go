// Package clients holds the HTTP clients the order service uses to
// reach the product and customer services. A 404 from the remote maps
// to ErrNotFound; anything else (network error, 5xx, bad body) is a
// transient failure retried a bounded number of times and then
// surfaced as ErrUnavailable. The two must never be conflated.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrNotFound    = errors.New("remote record not found")
	ErrUnavailable = errors.New("remote service unavailable")
)

const (
	callTimeout = 3 * time.Second
	maxAttempts = 3
	baseBackoff = 100 * time.Millisecond
	maxBackoff  = time.Second
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: callTimeout}
}

// getJSON fetches url and decodes the body into out, retrying
// transient failures with exponential backoff. Context cancellation
// aborts immediately.
func getJSON(ctx context.Context, hc *http.Client, url string, out any) error {
	return withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return ErrNotFound
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
}

// putJSON sends body to url; the response body is not consumed beyond
// its status.
func putJSON(ctx context.Context, hc *http.Client, url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return ErrNotFound
		case resp.StatusCode >= 300:
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil
	})
}

// withRetry runs fn up to maxAttempts times. ErrNotFound is a
// definitive answer and is never retried.
func withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	backoff := baseBackoff
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrNotFound) {
			return err
		}
		lastErr = err
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}
