package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRateLimited = errors.New("rate limited")

func cfg(attempts int) Config {
	return Config{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestDo(t *testing.T) {
	alwaysRetry := func(err error) bool { return true }

	t.Run("first attempt succeeds", func(t *testing.T) {
		calls := 0
		result, err := Do(context.Background(), cfg(3), alwaysRetry, func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		result, err := Do(context.Background(), cfg(3), alwaysRetry, func(ctx context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errRateLimited
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts and returns last error", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), cfg(3), alwaysRetry, func(ctx context.Context) (int, error) {
			calls++
			return 0, errRateLimited
		})
		assert.ErrorIs(t, err, errRateLimited)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable error returned immediately", func(t *testing.T) {
		fatal := errors.New("bad request")
		calls := 0
		_, err := Do(context.Background(), cfg(3), func(err error) bool { return errors.Is(err, errRateLimited) }, func(ctx context.Context) (int, error) {
			calls++
			return 0, fatal
		})
		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Do(ctx, Config{MaxAttempts: 3, BaseDelay: time.Minute}, alwaysRetry, func(ctx context.Context) (int, error) {
			return 0, errRateLimited
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero attempts still runs once", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), Config{}, alwaysRetry, func(ctx context.Context) (int, error) {
			calls++
			return 0, errRateLimited
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
