// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// development backend handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON"

	// MsgNoUserIDProvided is returned when a handler requires the caller's
	// user ID but the auth middleware did not store one.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgRouteNotFound is returned for unknown routes and for methods a route
	// does not serve.
	MsgRouteNotFound = "route not found"

	// MsgSingleObjectExpected is returned when a single-object request
	// matches zero or several rows.
	MsgSingleObjectExpected = "JSON object requested, multiple (or no) rows returned"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is either
	// expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"
)
