// Package server runs the HTTP transport: startup, and graceful shutdown
// once the run context is cancelled.
package server
