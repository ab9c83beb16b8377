package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns an error only if the server could not start or
	// failed while serving.
	Run(ctx context.Context) error
}
