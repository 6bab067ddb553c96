package secrets

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudperiscope/secretreader/services/aws/secrets/secretstest"
)

func TestDefaultRetryer(t *testing.T) {
	tests := []struct {
		name string
		want func(t *testing.T, r aws.Retryer)
	}{
		{
			name: "should configure max attempts",
			want: func(t *testing.T, r aws.Retryer) {
				assert.Equal(t, 10, r.MaxAttempts())
			},
		},
		{
			name: "should cap backoff delay",
			want: func(t *testing.T, r aws.Retryer) {
				delay, err := r.RetryDelay(20, nil)
				require.NoError(t, err)
				assert.LessOrEqual(t, delay, 30*time.Second)
			},
		},
		{
			name: "should retry on throttling exception",
			want: func(t *testing.T, r aws.Retryer) {
				assert.True(t, r.IsErrorRetryable(&secretstest.APIError{Code: "ThrottlingException"}))
			},
		},
		{
			name: "should retry on too many requests",
			want: func(t *testing.T, r aws.Retryer) {
				assert.True(t, r.IsErrorRetryable(&secretstest.APIError{Code: "TooManyRequestsException"}))
			},
		},
		{
			name: "should not retry on secret errors",
			want: func(t *testing.T, r aws.Retryer) {
				for _, code := range []string{
					"DecryptionFailure",
					"InternalServiceError",
					"InvalidParameterException",
					"InvalidRequestException",
					"ResourceNotFoundException",
				} {
					assert.False(t, r.IsErrorRetryable(&secretstest.APIError{Code: code}), code)
				}
			},
		},
		{
			name: "should not retry on context errors",
			want: func(t *testing.T, r aws.Retryer) {
				assert.False(t, r.IsErrorRetryable(fmt.Errorf("call: %w", context.DeadlineExceeded)))
				assert.False(t, r.IsErrorRetryable(context.Canceled))
			},
		},
		{
			name: "should not retry on nil or plain errors",
			want: func(t *testing.T, r aws.Retryer) {
				assert.False(t, r.IsErrorRetryable(nil))
				assert.False(t, r.IsErrorRetryable(errors.New("plain")))
			},
		},
		{
			name: "should implement exponential backoff",
			want: func(t *testing.T, r aws.Retryer) {
				delay1, err := r.RetryDelay(1, nil)
				require.NoError(t, err)
				delay3, err := r.RetryDelay(3, nil)
				require.NoError(t, err)
				delay5, err := r.RetryDelay(5, nil)
				require.NoError(t, err)

				// Jitter is ±25%, so attempts two apart never overlap.
				assert.Greater(t, delay3, delay1)
				assert.Greater(t, delay5, delay3)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retryer := DefaultRetryer()
			require.NotNil(t, retryer)
			tt.want(t, retryer)
		})
	}
}

func TestNewRetryer(t *testing.T) {
	r := NewRetryer(3, 10*time.Millisecond, 50*time.Millisecond)
	assert.Equal(t, 3, r.MaxAttempts())

	delay, err := r.RetryDelay(10, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, delay, 50*time.Millisecond)

	defaults := NewRetryer(0, -1, 0)
	assert.Equal(t, DefaultRetryer(), defaults)
}

func TestRetryTokens(t *testing.T) {
	r := DefaultRetryer()

	release, err := r.GetRetryToken(context.Background(), errors.New("x"))
	require.NoError(t, err)
	assert.NoError(t, release(nil))
	assert.NoError(t, r.GetInitialToken()(nil))
}
