package retry

import (
	"context"
	"time"
)

// Config описывает границы повторов: количество попыток и базовую задержку.
// Задержка удваивается после каждой неудачной попытки (экспоненциальный backoff).
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig - значения, с которыми работают rate-limited внешние API.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// Retryable сообщает, имеет ли смысл повторять вызов после данной ошибки.
// Обычно это проверка на 429 от внешнего API.
type Retryable func(err error) bool

// Do выполняет fn до первого успеха или до исчерпания попыток.
// Ошибки, для которых retryable вернул false, возвращаются сразу без повторов.
func Do[T any](ctx context.Context, cfg Config, retryable Retryable, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	delay := cfg.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if retryable != nil && !retryable(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
	}

	return zero, lastErr
}
