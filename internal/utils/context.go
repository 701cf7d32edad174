// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities used across
// go-task-desk: context keys, JSON response writing, the resty HTTP client
// wrapper, UUID generation and JWT helpers.
package utils

import (
	"context"

	"github.com/MKhiriev/go-task-desk/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user identifier in
// the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, "2b1c...")
var UserIDCtxKey = contextKey("userID")

// RoleCtxKey is the key used to store the authenticated user's role.
var RoleCtxKey = contextKey("role")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// ok is false when the value is missing, empty or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetRoleFromContext retrieves the role stored by the auth middleware.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	return role, ok
}
