// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package subscription

// State is the lifecycle phase of a Manager.
type State int

const (
	// Idle means no identity is bound and the collection is empty.
	Idle State = iota

	// Connecting means a channel or the initial fetch is in flight.
	Connecting

	// Live means the initial fetch landed and the channel is acknowledged.
	Live

	// Closing is held while the channel of the previous identity is torn
	// down.
	Closing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Live:
		return "live"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Status is a consistent view of the observable manager state.
type Status struct {
	State State

	// Loading is true until the initial fetch for the current identity
	// succeeds.
	Loading bool

	// Err is the last initial-fetch failure. It stays set while the fetch is
	// being retried.
	Err error

	// Stale is true while the channel is being re-established after an
	// error; events may have been missed.
	Stale bool

	// UserID is the identity the collection belongs to.
	UserID string
}
