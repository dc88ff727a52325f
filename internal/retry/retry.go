// Package retry provides a small explicit retry wrapper for calls against
// rate-sensitive external providers. The retry predicate distinguishes
// transient transport failures from the provider's "accepted, still
// processing" signal so each can use its own delay.
package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// Policy controls how Do re-invokes an operation.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// Delay is the pause between attempts after a transient failure.
	Delay time.Duration
	// ProcessingDelay is the longer pause used when the failure reports
	// that the provider is still preparing the response.
	ProcessingDelay time.Duration
	// Retryable decides whether an error warrants another attempt. A nil
	// predicate retries every error.
	Retryable func(error) bool
	// Processing reports whether an error is the still-processing signal
	// rather than a transport failure.
	Processing func(error) bool
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p Policy) delayFor(err error) time.Duration {
	if p.Processing != nil && p.Processing(err) && p.ProcessingDelay > 0 {
		return p.ProcessingDelay
	}
	return p.Delay
}

// Do invokes op until it succeeds, the policy is exhausted, or the context
// is cancelled. The last error is returned unwrapped so callers can
// classify it.
func Do(ctx context.Context, policy Policy, op func(context.Context) error) error {
	attempts := policy.attempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if policy.Retryable != nil && !policy.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}
		if err := Sleep(ctx, policy.delayFor(lastErr)); err != nil {
			return err
		}
	}
	return lastErr
}

// Sleep blocks for d, returning early when the context is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsTransient reports whether err looks like a transient transport
// condition (timeouts, resets, rate limiting, upstream overload).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	message := strings.ToLower(err.Error())
	if strings.Contains(message, "429") || strings.Contains(message, "rate limit") {
		return true
	}
	// Server errors are typically transient (outages, deploys, overload).
	for _, code := range []string{"502", "503", "504"} {
		if strings.Contains(message, code) {
			return true
		}
	}
	transientTokens := []string{
		"timeout",
		"deadline exceeded",
		"connection reset",
		"connection refused",
		"temporary failure",
		"awaiting headers",
	}
	for _, token := range transientTokens {
		if strings.Contains(message, token) {
			return true
		}
	}
	return false
}
