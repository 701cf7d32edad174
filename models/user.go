// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is an account of the development backend's identity provider.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the identity provider's user id; the profile shares it.
	ID string `json:"id"`

	// Email is the unique sign-in address, stored lower-cased.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the password. It is never
	// serialised.
	PasswordHash []byte `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the table associated with the User model.
func (u User) TableName() string {
	return "users"
}
