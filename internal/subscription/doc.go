// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package subscription keeps a live.Collection bound to the change channel of
// whoever is signed in.
//
// A Manager moves through Idle, Connecting, Live and Closing. On an identity
// change it closes the old channel, clears the collection and starts over
// for the new user: join the channel with the new token, then fetch the
// full list once the join is acknowledged. Events that arrive while that
// fetch is in flight are buffered by the collection and replayed. A rotated
// token is pushed to the open channel without a teardown. A dropped channel
// is re-established with exponential backoff and the list is reconciled
// against a fresh fetch so nothing missed during the gap is lost.
package subscription
