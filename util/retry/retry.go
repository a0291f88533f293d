// Package retry calls a function until it succeeds, the attempts run out or
// the context is done, sleeping between attempts.
package retry

import (
	"context"
	"time"

	"github.com/bsv-blockchain/spvchain/ulogger"
)

type Options struct {
	RetryCount          int
	BackoffMultiplier   int
	BackoffDurationType time.Duration
	ExponentialBackoff  bool
	BackoffFactor       float64
	MaxBackoff          time.Duration
	Message             string
	RetryIf             func(error) bool
}

type Option func(*Options)

func WithRetryCount(retryCount int) Option {
	return func(o *Options) {
		o.RetryCount = retryCount
	}
}

func WithBackoffMultiplier(backoffMultiplier int) Option {
	return func(o *Options) {
		o.BackoffMultiplier = backoffMultiplier
	}
}

func WithBackoffDurationType(durationType time.Duration) Option {
	return func(o *Options) {
		o.BackoffDurationType = durationType
	}
}

// WithExponentialBackoff multiplies the wait by BackoffFactor after every
// attempt instead of growing it linearly.
func WithExponentialBackoff() Option {
	return func(o *Options) {
		o.ExponentialBackoff = true
	}
}

func WithBackoffFactor(factor float64) Option {
	return func(o *Options) {
		o.BackoffFactor = factor
	}
}

func WithMaxBackoff(maxBackoff time.Duration) Option {
	return func(o *Options) {
		o.MaxBackoff = maxBackoff
	}
}

// WithRetryIf stops retrying as soon as retryIf reports false for an error.
func WithRetryIf(retryIf func(error) bool) Option {
	return func(o *Options) {
		o.RetryIf = retryIf
	}
}

func WithMessage(message string) Option {
	return func(o *Options) {
		o.Message = message
	}
}

// Retry calls f up to RetryCount times and returns the first success, or the
// last error. A done context ends the loop with the context error.
func Retry[T any](ctx context.Context, logger ulogger.Logger, f func() (T, error), opts ...Option) (T, error) {
	options := &Options{
		RetryCount:          3,
		BackoffMultiplier:   2,
		BackoffDurationType: time.Second,
		BackoffFactor:       2.0,
		MaxBackoff:          30 * time.Second,
		Message:             "retrying",
	}

	for _, opt := range opts {
		opt(options)
	}

	var (
		result T
		err    error
	)

	backoff := options.BackoffDurationType

	for i := 0; i < options.RetryCount; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		result, err = f()
		if err == nil {
			return result, nil
		}

		if i == options.RetryCount-1 {
			break
		}

		if options.RetryIf != nil && !options.RetryIf(err) {
			logger.Warnf("%s (attempt %d of %d), not retrying: %v", options.Message, i+1, options.RetryCount, err)
			break
		}

		logger.Warnf("%s (attempt %d of %d): %v", options.Message, i+1, options.RetryCount, err)

		if options.ExponentialBackoff {
			if err = sleepFunc(ctx, backoff); err != nil {
				return result, err
			}

			backoff = CappedExponentialBackoff(backoff, options.BackoffFactor, options.MaxBackoff)
		} else if err = BackoffAndSleep(ctx, i, options.BackoffMultiplier, options.BackoffDurationType); err != nil {
			return result, err
		}
	}

	return result, err
}
