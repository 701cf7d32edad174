// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	ErrNotSignedIn      = errors.New("not signed in")
	ErrNoStoredSession  = errors.New("no stored session")
	ErrSessionExpired   = errors.New("session expired, sign in again")
	ErrInvalidSession   = errors.New("identity provider returned an invalid session")
	ErrEmptyCredentials = errors.New("email and password are required")
)
