package errors

import (
	"context"
	"errors"
)

// IsRetryableError determines if an error is transient and the operation should be retried.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_SERVICE_UNAVAILABLE,
			ERR_STORAGE_UNAVAILABLE:
			return true
		}
	}

	return false
}

// IsContinuityError reports whether err means the predecessor of a header is
// not known yet. The sync layer buffers such headers as orphans.
func IsContinuityError(err error) bool {
	return Is(err, ErrNoPreviousBlock)
}

// IsValidationError reports whether err was raised because a header failed
// consensus-shape checks.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_WRONG_PREVIOUS_HEADER,
			ERR_BLOCK_HEADER_INVALID,
			ERR_BLOCK_INVALID:
			return true
		}
	}

	return false
}
