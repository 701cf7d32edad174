// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package live

import "time"

// EventType tags a change event.
type EventType int

const (
	// Created carries the image of a newly inserted entity.
	Created EventType = iota + 1

	// Updated carries the previous (optional) and the new image of an entity.
	Updated

	// Deleted carries only the identifier of a removed entity.
	Deleted
)

// String implements fmt.Stringer.
func (t EventType) String() string {
	switch t {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is one change to an entity of type T as delivered by a change feed.
//
// For Created and Updated events New holds the full row image and ID may be
// left empty (it is derived from New). For Deleted events only ID is
// meaningful. Old is the before-image of an update when the feed provides it.
type Event[T any] struct {
	Type EventType

	// Kind is the entity kind (table name) the event belongs to.
	Kind string

	// ID identifies the entity. Required for Deleted.
	ID string

	Old *T
	New T

	// ArrivedAt is when the client received the event. It orders buffered
	// events against the initial fetch.
	ArrivedAt time.Time
}

// CreatedEvent builds a Created event.
func CreatedEvent[T any](kind string, entity T, arrivedAt time.Time) Event[T] {
	return Event[T]{Type: Created, Kind: kind, New: entity, ArrivedAt: arrivedAt}
}

// UpdatedEvent builds an Updated event. old may be nil.
func UpdatedEvent[T any](kind string, old *T, entity T, arrivedAt time.Time) Event[T] {
	return Event[T]{Type: Updated, Kind: kind, Old: old, New: entity, ArrivedAt: arrivedAt}
}

// DeletedEvent builds a Deleted event.
func DeletedEvent[T any](kind, id string, arrivedAt time.Time) Event[T] {
	return Event[T]{Type: Deleted, Kind: kind, ID: id, ArrivedAt: arrivedAt}
}
