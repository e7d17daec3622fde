package domain

import "fmt"

// Operation is one fully rendered GraphQL query or mutation document,
// ready to send. Text is never mutated after the payload source produces it.
type Operation struct {
	Text string `json:"text"`
	// Label identifies the operation to the operator: the substituted ID
	// in template mode, or the 1-based input line number in file mode.
	Label string `json:"label"`
}

// OutcomeStatus classifies the terminal result of one work item.
type OutcomeStatus string

const (
	// OutcomeSuccess means the HTTP exchange completed and the response
	// carried no GraphQL-level errors.
	OutcomeSuccess OutcomeStatus = "success"
	// OutcomeFailed means the transport attempt budget was exhausted.
	OutcomeFailed OutcomeStatus = "failed"
	// OutcomeRejected means the server returned a GraphQL error payload
	// inside a structurally valid response. Rejections are deterministic
	// and are never retried.
	OutcomeRejected OutcomeStatus = "rejected"
)

// Outcome is the terminal result of one work item. Exactly one Outcome
// exists per claimed work item.
type Outcome struct {
	Status   OutcomeStatus `json:"status"`
	Body     string        `json:"body,omitempty"`
	Error    string        `json:"error,omitempty"`
	Attempts int           `json:"attempts"`
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Status == OutcomeSuccess }

// WorkItem tracks one Operation through dispatch. Each work item is
// exclusively owned by the worker processing it.
type WorkItem struct {
	Index    int // position in the input order
	Op       Operation
	Attempts int
	Outcome  Outcome
}

// Result aggregates a finished dispatch run.
type Result struct {
	Total      int
	Dispatched int
	Succeeded  int
	Failed     int
	Skipped    int
	Cancelled  bool
	// Unanswered holds the labels of operations never claimed because the
	// run was cancelled before a worker reached them.
	Unanswered []string
}

// ExitErr returns a non-nil error when the run must map to a non-zero
// process exit status.
func (r Result) ExitErr() error {
	if r.Failed > 0 {
		return fmt.Errorf("%d of %d operations failed (%d skipped)", r.Failed, r.Total, r.Skipped)
	}
	if r.Cancelled {
		return fmt.Errorf("run cancelled with %d of %d operations skipped", r.Skipped, r.Total)
	}
	return nil
}
