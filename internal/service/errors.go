package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyCredentials пустой email или пароль при входе
var ErrEmptyCredentials = errors.New("empty email or password")

// RateLimitError ответ 429 от внешнего сервиса
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// NewRateLimitError создает новую ошибку rate limit
func NewRateLimitError(retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{RetryAfter: retryAfter}
}
