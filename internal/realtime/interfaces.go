// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/realtime_mock.go -package=mock

// Subscription describes the channel to open.
type Subscription struct {
	// Topic names the channel; it is unique per logical list.
	Topic string

	// Table is the table whose row changes are delivered.
	Table string

	// Token is the access token the channel is authorised with.
	Token string
}

// Feed opens change channels.
type Feed interface {
	// Subscribe opens a channel and returns once the server acknowledged the
	// join. The returned Channel is authorised with sub.Token.
	Subscribe(ctx context.Context, sub Subscription) (Channel, error)
}

// Channel is an open, authorised stream of row changes.
type Channel interface {
	// Events delivers changes in arrival order. It is closed after Done.
	Events() <-chan Change

	// Done is closed when the channel terminates for any reason.
	Done() <-chan struct{}

	// Err returns the cause of termination, or nil while the channel is
	// open or after Close.
	Err() error

	// SetAuth rebinds the channel to a rotated access token.
	SetAuth(token string) error

	// Close leaves the channel and releases its connection.
	Close() error
}
