// ABOUTME: Completion wrapper adding a per-attempt timeout and bounded retries
// ABOUTME: Only transient failures are retried, and never after the caller gives up
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/util"
)

// RetryConfig bounds how long and how often a completion is attempted.
type RetryConfig struct {
	AttemptTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// RetryingCompleter decorates a Completer.
type RetryingCompleter struct {
	next Completer
	cfg  RetryConfig
}

func NewRetryingCompleter(next Completer, cfg RetryConfig) *RetryingCompleter {
	return &RetryingCompleter{next: next, cfg: cfg}
}

func (r *RetryingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Debug("retrying completion", "attempt", attempt+1, "err", lastErr)
			if err := util.Sleep(ctx, util.CalculateBackoff(r.cfg.RetryDelay, attempt)); err != nil {
				break
			}
		}

		attempts++
		reply, err := r.attempt(ctx, prompt)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) {
			break
		}
	}

	return "", fmt.Errorf("failed to complete after %d attempts: %w", attempts, withStage(lastErr))
}

func (r *RetryingCompleter) attempt(ctx context.Context, prompt string) (string, error) {
	if r.cfg.AttemptTimeout <= 0 {
		return r.next.Complete(ctx, prompt)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.AttemptTimeout)
	defer cancel()
	return r.next.Complete(attemptCtx, prompt)
}

// withStage makes sure the returned error always matches ErrCompletion.
func withStage(err error) error {
	if errors.Is(err, ErrCompletion) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCompletion, err)
}
