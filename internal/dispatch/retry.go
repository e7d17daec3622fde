package dispatch

import (
	"context"
	"log/slog"

	"gqlbatch/internal/domain"
)

// DefaultMaxAttempts is the attempt budget used when none is configured.
const DefaultMaxAttempts = 3

// RetryPolicy gives one operation up to a fixed number of transport
// attempts. Transient transport failures are retried immediately with no
// backoff. A GraphQL error payload inside a valid response is a
// deterministic rejection and is never retried; sending the same
// document again cannot change the answer.
type RetryPolicy struct {
	transport   domain.Transport
	maxAttempts int
	logger      *slog.Logger
}

// NewRetryPolicy wraps the transport with an attempt budget of
// maxAttempts total calls (minimum 1).
func NewRetryPolicy(transport domain.Transport, maxAttempts int, logger *slog.Logger) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryPolicy{
		transport:   transport,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "retry"),
	}
}

// Execute runs one operation through its attempt budget and returns its
// terminal outcome.
func (p *RetryPolicy) Execute(ctx context.Context, op domain.Operation) domain.Outcome {
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		resp, err := p.transport.Send(ctx, op)
		if err != nil {
			lastErr = err
			p.logger.Warn("transport attempt failed",
				"label", op.Label, "attempt", attempt, "max_attempts", p.maxAttempts, "error", err)
			continue
		}
		if resp.HasErrors {
			return domain.Outcome{
				Status:   domain.OutcomeRejected,
				Body:     resp.Body,
				Error:    "graphql error response",
				Attempts: attempt,
			}
		}
		return domain.Outcome{Status: domain.OutcomeSuccess, Body: resp.Body, Attempts: attempt}
	}
	return domain.Outcome{
		Status:   domain.OutcomeFailed,
		Error:    lastErr.Error(),
		Attempts: p.maxAttempts,
	}
}
