package scraper

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tariktz/gopherseo-od/internal/fetch"
	"github.com/tariktz/gopherseo-od/internal/odlog"
)

// classify maps a raw fetch outcome onto the error vocabulary of spec §7.
// A nil return means the fetch succeeded.
func classify(resp fetch.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return nil
	case resp.StatusCode >= 500, resp.StatusCode == 408, resp.StatusCode == 429:
		return fmt.Errorf("%w: status %d", ErrTransportFailure, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status %d", ErrHTTPClient, resp.StatusCode)
	}
}

// fetchWithRetry fetches url, retrying up to cfg.Tries times with
// cfg.RetryWait spacing on transport failures. HTTP client errors
// (non-408/429 4xx) are never retried. The last classification error is
// returned once tries are exhausted.
func fetchWithRetry(ctx context.Context, fetcher fetch.Fetcher, url string, cfg Config) (fetch.Response, error) {
	tries := cfg.Tries
	if tries <= 0 {
		tries = 1
	}

	var lastErr error
	for attempt := 0; attempt < tries; attempt++ {
		resp, err := fetcher.Fetch(ctx, url)
		if classErr := classify(resp, err); classErr != nil {
			lastErr = classErr

			if errors.Is(classErr, ErrHTTPClient) {
				return fetch.Response{}, classErr
			}

			if attempt < tries-1 {
				odlog.Tracef("retrying %s (attempt %d of %d): %v", url, attempt+2, tries, classErr)
				if waitErr := retryWait(ctx, cfg); waitErr != nil {
					return fetch.Response{}, waitErr
				}
				continue
			}
			return fetch.Response{}, lastErr
		}

		return resp, nil
	}

	return fetch.Response{}, lastErr
}

// waitBetweenRequests pauses per the wait policy of spec §4.D: Config.Wait
// seconds between requests, jittered into [0.5x, 1.5x) when RandomWait is
// set. A zero Wait is a no-op.
func waitBetweenRequests(ctx context.Context, cfg Config) error {
	if cfg.Wait <= 0 {
		return nil
	}

	d := cfg.Wait
	if cfg.RandomWait {
		lo := float64(cfg.Wait) * 0.5
		hi := float64(cfg.Wait) * 1.5
		d = time.Duration(lo + rand.Float64()*(hi-lo))
	}
	return sleep(ctx, d)
}

// retryWait pauses for Config.RetryWait, unconditionally (no jitter).
func retryWait(ctx context.Context, cfg Config) error {
	if cfg.RetryWait <= 0 {
		return nil
	}
	return sleep(ctx, cfg.RetryWait)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
