package store

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"syscall"
	"time"
)

// RetryableError marks an error as transient, such as a refused connection
// while a server is starting.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return stderrors.As(err, &re)
}

// Transient wraps err with Retryable when it looks like a connection that
// may still come up: network errors, refused or reset connections, and
// early EOF. Anything else, such as a rejected password, is returned as is.
func Transient(err error) error {
	if isTransient(err) {
		return Retryable(err)
	}
	return err
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	return stderrors.As(err, &ne) ||
		stderrors.Is(err, syscall.ECONNREFUSED) ||
		stderrors.Is(err, syscall.ECONNRESET) ||
		stderrors.Is(err, io.EOF) ||
		stderrors.Is(err, io.ErrUnexpectedEOF)
}

const retryAttempts = 3

// retryDelay is the wait before the second attempt; it doubles after that.
var retryDelay = time.Second

// retryWithBackoff runs fn up to three times. Only Retryable errors are
// retried.
func retryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var lastErr error

	for i := 0; i < retryAttempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
