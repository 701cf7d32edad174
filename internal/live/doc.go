// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package live keeps an in-memory, identifier-unique and optionally ordered
// copy of one server-side entity kind in step with a stream of change events.
//
// A Collection starts uninitialised. Events applied before Initialize are
// buffered and replayed once the initial snapshot lands, so nothing that
// arrives between opening a change feed and receiving the first full listing
// is lost. After that, Created, Updated and Deleted events are folded in one
// at a time:
//
//   - Created for an identifier that is already present is ignored;
//   - Updated replaces the whole image and inserts unknown identifiers;
//   - Deleted for an unknown identifier is ignored.
//
// MutateLocal lets the caller apply an optimistic change ahead of server
// confirmation. The next server event for the same identifier always wins.
package live
