package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/larder"
)

// RetryFunc is called before each retry with the upcoming attempt number
// (starting at 2) and the error that triggered it.
type RetryFunc func(url string, attempt int, err error)

// FetchWithRetry fetches url, retrying failed attempts after each of the
// given delays in turn. With no delays it makes exactly one attempt.
// Only ENETWORK failures are retried. Waiting is canceled with ctx.
func FetchWithRetry(ctx context.Context, fetcher larder.Fetcher, url string, delays []time.Duration, onRetry RetryFunc) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || ctx.Err() != nil || larder.ErrorCode(err) != larder.ENETWORK {
			break
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return "", lastErr
}
