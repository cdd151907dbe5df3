package server

import "context"

// Server defines the lifecycle contract of the application server.
type Server interface {
	// RunServer serves requests until a stop signal arrives, then shuts down
	// gracefully.
	RunServer() error

	// Run serves requests until ctx is done.
	Run(ctx context.Context) error
}
