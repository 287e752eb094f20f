package gphotos

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy controls how the client retries transient HTTP failures.
// The core never retries; this policy is the only retry loop in the system.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// InitialBackoff seeds the fibonacci backoff curve.
	InitialBackoff time.Duration
	// MaxBackoff caps a single wait between attempts.
	MaxBackoff time.Duration
	// RetryableStatuses lists the HTTP status codes worth retrying.
	// Transport-level errors are always retryable.
	RetryableStatuses map[int]bool
}

// DefaultRetryPolicy retries rate limits and server errors a handful of
// times with capped fibonacci backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    5,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     16 * time.Second,
		RetryableStatuses: map[int]bool{
			429: true,
			500: true,
			502: true,
			503: true,
			504: true,
		},
	}
}

// IsRetryable reports whether a response status code should be retried.
func (p RetryPolicy) IsRetryable(status int) bool {
	return p.RetryableStatuses[status]
}

// Do runs f, retrying per the policy whenever f returns an error wrapped
// with retry.RetryableError.
func (p RetryPolicy) Do(ctx context.Context, f func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	backoff := retry.NewFibonacci(p.InitialBackoff)
	backoff = retry.WithCappedDuration(p.MaxBackoff, backoff)
	backoff = retry.WithMaxRetries(uint64(attempts-1), backoff)

	return retry.Do(ctx, backoff, f)
}
