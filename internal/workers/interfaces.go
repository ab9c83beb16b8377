// Package workers runs the background workers of the server under one
// errgroup, so that a failing worker stops the others.
package workers

import "context"

// Worker is a long-running background job.
//
// Run blocks until ctx is cancelled or the worker fails. Returning nil after
// cancellation is the normal way to stop.
type Worker interface {
	Run(ctx context.Context) error
}

// Sweeper removes expired sessions and reports how many were removed.
// [session.Registry] implements it.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}
