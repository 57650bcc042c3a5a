package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/mautops/remotework-gin/internal/repository"
)

const (
	readAttempts     = 3
	readRetryBackoff = 50 * time.Millisecond
)

// RetryRead 重试只读操作,只对存储层的瞬时错误重试
func RetryRead[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	backoff := readRetryBackoff
	for attempt := 0; attempt < readAttempts; attempt++ {
		result, err = fn()
		if err == nil || !retryable(err) {
			return result, err
		}
		if attempt == readAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2 // 指数退避
	}
	return result, err
}

func retryable(err error) bool {
	var wfErr *Error
	if errors.As(err, &wfErr) {
		return false
	}
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
