// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "github.com/MKhiriev/go-task-desk/models"

// Identity is the authenticated user together with the credential currently
// used to act on their behalf.
type Identity struct {
	Session models.Session
	Profile models.Profile
}

// IsZero reports whether nobody is signed in.
func (i Identity) IsZero() bool {
	return i.Session.IsZero()
}

// UserID returns the identity provider's user id.
func (i Identity) UserID() string {
	return i.Session.UserID
}

// Token returns the current access token.
func (i Identity) Token() string {
	return i.Session.AccessToken
}

// SameUser reports whether i and other belong to the same signed-in user.
func (i Identity) SameUser(other Identity) bool {
	return !i.IsZero() && !other.IsZero() && i.UserID() == other.UserID()
}

// Event is a session transition observed by subscribers. It is one of
// IdentityChanged, CredentialRotated or SignedOut.
type Event interface {
	sessionEvent()
}

// IdentityChanged reports a new user (including the first sign-in). Anything
// bound to Prev must be torn down before Next is served.
type IdentityChanged struct {
	Prev Identity
	Next Identity
}

// CredentialRotated reports a new access token for the same user. Open
// channels are rebound to Identity.Token(); nothing is torn down.
type CredentialRotated struct {
	Identity Identity
}

// SignedOut reports that Prev is no longer signed in.
type SignedOut struct {
	Prev Identity
}

func (IdentityChanged) sessionEvent()   {}
func (CredentialRotated) sessionEvent() {}
func (SignedOut) sessionEvent()         {}

// Classify derives the transition from prev to next. It returns false when
// nothing a subscriber cares about changed.
func Classify(prev, next Identity) (Event, bool) {
	switch {
	case prev.IsZero() && next.IsZero():
		return nil, false
	case next.IsZero():
		return SignedOut{Prev: prev}, true
	case !prev.SameUser(next):
		return IdentityChanged{Prev: prev, Next: next}, true
	case prev.Token() != next.Token():
		return CredentialRotated{Identity: next}, true
	case !sameProfile(prev.Profile, next.Profile):
		// a profile edit changes what the user may see
		return IdentityChanged{Prev: prev, Next: next}, true
	default:
		return nil, false
	}
}

func sameProfile(a, b models.Profile) bool {
	return a.ID == b.ID && a.Role == b.Role && a.Email == b.Email && a.FullName == b.FullName
}
