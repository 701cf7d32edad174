// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract for the transport servers managed by
// this package.
type Server interface {
	// RunServer serves requests until ctx is cancelled or a stop signal
	// arrives, then shuts down gracefully. It returns the listener error if
	// the server could not start.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
