// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is the access level of a team member.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePartner Role = "partner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// SeesAll reports whether the role is allowed to follow every task rather
// than only the ones assigned to or created by the user.
func (r Role) SeesAll() bool {
	return r == RoleAdmin || r == RolePartner || r == RoleManager
}

// Profile is the public record of an authenticated user.
type Profile struct {
	// ID equals the identity provider's user id (the JWT subject).
	ID string `json:"id"`

	// Email is the sign-in address.
	Email string `json:"email"`

	// FullName is the display name; may be empty for fresh sign-ups.
	FullName string `json:"full_name"`

	// Role controls role-based visibility.
	Role Role `json:"role"`

	// AvatarURL is an optional picture location.
	AvatarURL *string `json:"avatar_url"`
}

// DisplayName returns FullName, falling back to Email.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
