package domain

import "context"

// Response is the result of one completed HTTP exchange. HasErrors is true
// when the GraphQL payload carries a non-empty top-level "errors" field;
// the body itself is treated as opaque text for logging.
type Response struct {
	Body      string
	HasErrors bool
}

// Transport performs exactly one network round trip for one Operation.
// A returned error is by definition a transient transport failure
// (connection error, timeout, non-2xx status, malformed response) and is
// eligible for retry by the caller.
type Transport interface {
	Send(ctx context.Context, op Operation) (*Response, error)
}
