// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package subscription

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-task-desk/internal/live"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/session"
)

// ErrSkip is returned by Source.Decode for changes the list is not
// interested in. Skipped changes are not logged.
var ErrSkip = errors.New("subscription: change skipped")

// Source adapts one entity kind to a Manager.
type Source[T any] interface {
	// Topic names the channel; unique per logical list.
	Topic() string

	// Table is the table whose changes feed the list.
	Table() string

	// FetchAll reads the full list visible to id.
	FetchAll(ctx context.Context, id session.Identity) ([]T, error)

	// Decode turns a row change into a collection event. It returns an error
	// wrapping ErrSkip to filter the change out.
	Decode(change realtime.Change, id session.Identity) (live.Event[T], error)
}

// Resolver is implemented by sources that need to complete an event before
// it is applied, e.g. re-fetch a row to fill joined fields. Resolve runs off
// the manager loop, one event at a time in arrival order. When it fails the
// decoded event is applied as is.
type Resolver[T any] interface {
	Resolve(ctx context.Context, id session.Identity, ev live.Event[T]) (live.Event[T], error)
}

// Authority is implemented by sources that know whether FetchAll already
// reflects every change that arrived before it was issued. A source whose
// fetch reads a store that it writes itself in Resolve returns false; all
// events buffered before the first fetch are then replayed on top of it.
type Authority interface {
	FetchIsAuthoritative() bool
}
