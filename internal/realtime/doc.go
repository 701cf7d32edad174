// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime is the client side of the row change feed.
//
// The feed speaks a Phoenix-channel style JSON protocol over a websocket:
// the client joins a topic for one table with its access token attached to
// the join, waits for the join to be acknowledged, and then receives
// postgres_changes messages carrying INSERT, UPDATE and DELETE row images.
// A heartbeat keeps the socket alive and a rotated token is pushed to the
// server with an access_token message instead of re-joining.
//
// Feed.Subscribe returns a Channel, a push-based stream of Change values
// with explicit liveness (Done, Err). Channels never reconnect on their
// own; reconnection policy belongs to the caller.
package realtime
