// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session tracks who is signed in.
//
// Provider turns sign-in, token refresh and sign-out into a stream of Event
// values. Each Event is exactly one of IdentityChanged, CredentialRotated or
// SignedOut, so consumers can tear down per-user state on an identity change
// and merely rebind credentials on a rotation.
package session
