// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the credential bundle issued by the identity provider.
//
// AccessToken is a short-lived bearer JWT whose subject is UserID.
// RefreshToken is exchanged for a new AccessToken before ExpiresAt; the
// user stays the same across such a rotation.
type Session struct {
	// UserID is the identity provider's user id.
	UserID string `json:"user_id"`

	// AccessToken is attached to every REST request and realtime channel.
	AccessToken string `json:"access_token"`

	// RefreshToken is used once to obtain the next session.
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the access token expiry.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsZero reports whether the session carries no credential.
func (s Session) IsZero() bool {
	return s.AccessToken == ""
}

// ExpiresWithin reports whether the access token expires before now+d.
func (s Session) ExpiresWithin(d time.Duration, now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(d).Before(s.ExpiresAt)
}
