package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"gqlbatch/internal/domain"
	"gqlbatch/internal/gqldoc"
	"gqlbatch/internal/metrics"
	"gqlbatch/internal/runlog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Options configures one dispatch run.
type Options struct {
	// Concurrency is the maximum number of simultaneously in-flight
	// operations (minimum 1).
	Concurrency int
	// FailFast stops claiming new operations after the first terminal
	// failure. Operations already in flight still run to completion
	// through their full retry budget and are logged normally.
	FailFast bool
}

// Dispatcher converts an ordered sequence of operations into a
// bounded-parallel execution schedule. Claim order is strictly the input
// order; completion order is whatever the workers race to.
type Dispatcher struct {
	policy *RetryPolicy
	log    *runlog.Log
	logger *slog.Logger
	tracer trace.Tracer
	opts   Options
}

// New creates a dispatcher executing through the given retry policy and
// reporting every terminal outcome to the run log.
func New(policy *RetryPolicy, log *runlog.Log, logger *slog.Logger, opts Options) *Dispatcher {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Dispatcher{
		policy: policy,
		log:    log,
		logger: logger.With("component", "dispatcher"),
		tracer: otel.Tracer("gqlbatch-dispatch"),
		opts:   opts,
	}
}

// run holds the shared state of one dispatch run. It is created per Run
// call and handed to every worker; nothing lives at package level.
type run struct {
	d       *Dispatcher
	ops     []domain.Operation
	total   int
	padding int

	next      atomic.Int64 // claim index
	cancelled atomic.Bool
	claimed   atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	done      atomic.Int64
}

// Run executes all operations and blocks until every claimed operation
// has reached a terminal outcome. Cancelling ctx stops new claims, like
// fail-fast; it never abandons a request already sent.
func (d *Dispatcher) Run(ctx context.Context, ops []domain.Operation) domain.Result {
	r := &run{d: d, ops: ops, total: len(ops)}
	for _, op := range ops {
		if len(op.Label) > r.padding {
			r.padding = len(op.Label)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < d.opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx)
		}()
	}
	wg.Wait()

	res := domain.Result{
		Total:      r.total,
		Dispatched: int(r.claimed.Load()),
		Succeeded:  int(r.succeeded.Load()),
		Failed:     int(r.failed.Load()),
		Cancelled:  r.cancelled.Load() || ctx.Err() != nil,
	}
	res.Skipped = res.Total - res.Dispatched
	// Claims walk the input in order, so the unclaimed tail is exactly
	// everything past the dispatched prefix.
	for _, op := range ops[res.Dispatched:] {
		res.Unanswered = append(res.Unanswered, op.Label)
	}
	return res
}

func (r *run) worker(ctx context.Context) {
	for {
		if r.cancelled.Load() || ctx.Err() != nil {
			return
		}
		i := int(r.next.Add(1)) - 1
		if i >= r.total {
			return
		}
		r.claimed.Add(1)
		// Cancellation only suppresses future claims. A claimed operation
		// always runs to its natural conclusion, so its attempts get a
		// context that survives ctx being cancelled.
		r.process(context.WithoutCancel(ctx), &domain.WorkItem{Index: i, Op: r.ops[i]})
	}
}

func (r *run) process(ctx context.Context, item *domain.WorkItem) {
	ctx, span := r.d.tracer.Start(ctx, "dispatch.operation", trace.WithAttributes(
		attribute.Int("operation.index", item.Index),
		attribute.String("operation.label", item.Op.Label),
	))
	defer span.End()

	item.Outcome = r.d.policy.Execute(ctx, item.Op)
	item.Attempts = item.Outcome.Attempts
	span.SetAttributes(attribute.Int("operation.attempts", item.Attempts))

	pct := float64(r.done.Add(1)) / float64(r.total) * 100
	summary := gqldoc.Summarize(item.Op.Text)

	switch item.Outcome.Status {
	case domain.OutcomeSuccess:
		r.succeeded.Add(1)
		metrics.OperationsTotal.WithLabelValues("success").Inc()
		span.SetStatus(codes.Ok, "")
		r.d.log.Printf("Processed %-*s (%5.1f%% complete) - %s: %s",
			r.padding, item.Op.Label, pct, summary, item.Outcome.Body)
	case domain.OutcomeRejected:
		r.failed.Add(1)
		metrics.OperationsTotal.WithLabelValues("rejected").Inc()
		span.SetStatus(codes.Error, "graphql error response")
		r.d.log.Printf("Rejected %-*s (%5.1f%% complete) - %s: %s",
			r.padding, item.Op.Label, pct, summary, item.Outcome.Body)
		r.fail(item)
	case domain.OutcomeFailed:
		r.failed.Add(1)
		metrics.OperationsTotal.WithLabelValues("failed").Inc()
		span.SetStatus(codes.Error, "attempt budget exhausted")
		r.d.log.Printf("Failed %-*s (%5.1f%% complete) after %d attempt(s) - %s: %s",
			r.padding, item.Op.Label, pct, item.Attempts, summary, item.Outcome.Error)
		r.fail(item)
	}
}

// fail records a terminal failure and, under fail-fast, stops all
// further claims. In-flight work keeps running.
func (r *run) fail(item *domain.WorkItem) {
	if !r.d.opts.FailFast {
		return
	}
	if r.cancelled.CompareAndSwap(false, true) {
		r.d.logger.Warn("stopping new dispatch after failure, draining in-flight work",
			"label", item.Op.Label, "index", item.Index)
	}
}
