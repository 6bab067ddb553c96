package secrets

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"
)

// CustomRetryer is an aws.Retryer with exponential backoff and jitter that only
// retries throttling errors. It is handed to the SDK through WithRetryer; the
// Reader itself never retries.
//
// All fields are immutable after construction, so a CustomRetryer is safe for
// concurrent use.
type CustomRetryer struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

var _ aws.Retryer = (*CustomRetryer)(nil)

// NewRetryer returns a CustomRetryer. Non-positive arguments fall back to the
// defaults of DefaultRetryer.
func NewRetryer(maxAttempts int, baseDelay, maxDelay time.Duration) *CustomRetryer {
	r := DefaultRetryer()
	if maxAttempts > 0 {
		r.maxAttempts = maxAttempts
	}
	if baseDelay > 0 {
		r.baseDelay = baseDelay
	}
	if maxDelay > 0 {
		r.maxDelay = maxDelay
	}
	return r
}

// DefaultRetryer returns a retryer with at most 10 attempts, a 100ms base
// delay and a 30s delay cap.
func DefaultRetryer() *CustomRetryer {
	return &CustomRetryer{
		maxAttempts: 10,
		baseDelay:   100 * time.Millisecond,
		maxDelay:    30 * time.Second,
	}
}

// MaxAttempts returns the maximum number of attempts, including the first.
func (r *CustomRetryer) MaxAttempts() int {
	return r.maxAttempts
}

// RetryDelay returns baseDelay * 2^(attempt-1) with ±25% jitter, capped at maxDelay.
func (r *CustomRetryer) RetryDelay(attempt int, _ error) (time.Duration, error) {
	delay := time.Duration(math.Pow(2, float64(attempt-1))) * r.baseDelay

	jitterRange := int64(float64(delay) * 0.25)
	if jitterRange > 0 {
		delay += time.Duration(rand.Int63n(2*jitterRange) - jitterRange)
	}

	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	if delay < 0 {
		delay = 0
	}

	return delay, nil
}

// IsErrorRetryable reports whether err is a transient throttling error.
func (r *CustomRetryer) IsErrorRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.ErrorCode() {
	case "ThrottlingException",
		"ProvisionedThroughputExceededException",
		"RequestLimitExceeded",
		"TooManyRequestsException":
		return true
	}

	// Everything Secrets Manager documents for GetSecretValue is permanent.
	return false
}

// GetRetryToken always grants a retry; there is no shared token bucket.
func (r *CustomRetryer) GetRetryToken(context.Context, error) (func(error) error, error) {
	return func(error) error { return nil }, nil
}

// GetInitialToken returns a no-op release function.
func (r *CustomRetryer) GetInitialToken() func(error) error {
	return func(error) error { return nil }
}

