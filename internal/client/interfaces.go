// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-task-desk/internal/session"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// runtime is the background part of the client: live lists and the token
// refresh job.
type runtime interface {
	Start(ctx context.Context)
	Close()
}

type restorer interface {
	Restore(ctx context.Context) (session.Identity, bool, error)
}

// screens are the interactive flows of the terminal UI.
type screens interface {
	LoginFlow(ctx context.Context) (session.Identity, error)
	Dashboard(ctx context.Context) (logout bool, err error)
}
