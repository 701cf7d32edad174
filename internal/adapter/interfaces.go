// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for the hosted backend: the
// identity endpoints and the REST data API of the task desk.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from the wire protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the hosted backend.
// Implementations attach the project API key to every request and the
// bearer token to data requests, and map transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent data requests. The session provider calls it on every
	// identity or credential change; an empty token clears it.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// SignIn exchanges an email and password for a session.
	SignIn(ctx context.Context, email, password string) (models.Session, error)

	// SignUp creates an account and returns its first session. fullName is
	// stored as user metadata and copied into the profile by the backend.
	SignUp(ctx context.Context, email, password, fullName string) (models.Session, error)

	// RefreshSession exchanges a refresh token for a new session of the same
	// user. A rejected refresh token yields [ErrUnauthorized].
	RefreshSession(ctx context.Context, refreshToken string) (models.Session, error)

	// SignOut revokes the session identified by accessToken.
	SignOut(ctx context.Context, accessToken string) error

	// GetProfile fetches the profile row of userID using accessToken, which
	// may differ from the stored token while a new identity is established.
	GetProfile(ctx context.Context, accessToken, userID string) (models.Profile, error)

	// ListTasks returns every task visible to the token holder ordered by
	// due date, undated tasks last, with company and assignee joined.
	ListTasks(ctx context.Context) ([]models.Task, error)

	// GetTask returns one task with its joins. [ErrNotFound] means the row
	// does not exist or is not visible to the token holder.
	GetTask(ctx context.Context, id string) (models.Task, error)

	// UpdateTask applies patch to the task and returns the stored row.
	// updated_at is always stamped; completed_at follows the status.
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)

	// CreateTask inserts a task and returns the stored row.
	CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error
}
