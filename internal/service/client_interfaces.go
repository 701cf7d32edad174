// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/internal/subscription"
	"github.com/MKhiriev/go-task-desk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService is the sign-in surface used by the presentation layer.
type ClientAuthService interface {
	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (session.Identity, error)

	// SignUp creates an account and signs it in.
	SignUp(ctx context.Context, email, password, fullName string) (session.Identity, error)

	// Restore resumes the session saved by a previous run. It reports
	// false when there was nothing to resume.
	Restore(ctx context.Context) (session.Identity, bool, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// Current returns the signed-in identity, zero when signed out.
	Current() session.Identity
}

// ClientTaskService is the live task list.
type ClientTaskService interface {
	// Tasks returns the current snapshot ordered by due date.
	Tasks() []models.Task

	// Loading is true until the first fetch for the signed-in user lands.
	Loading() bool

	// Err is the last fetch failure. It stays set while the fetch is retried.
	Err() error

	// Stale is true while the change channel is being re-established.
	Stale() bool

	// Status reports all of the above at once.
	Status() subscription.Status

	// Changes signals every list or status change.
	Changes() (<-chan struct{}, func())

	// Mutate applies patch optimistically and writes it to the backend.
	// The local change is rolled back when the write fails, unless the
	// server changed the task in the meantime.
	Mutate(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)

	// ToggleComplete flips a task between completed and pending.
	ToggleComplete(ctx context.Context, id string) (models.Task, error)

	// Create inserts a task created by the current user.
	Create(ctx context.Context, draft models.TaskDraft) (models.Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, id string) error
}

// ClientNotificationService is the notification panel.
type ClientNotificationService interface {
	// Notifications returns the history, newest first.
	Notifications() []models.Notification

	UnreadCount() int

	Status() subscription.Status

	Changes() (<-chan struct{}, func())

	MarkRead(ctx context.Context, id string) error

	MarkAllRead(ctx context.Context) error

	// Clear deletes the history of the current user.
	Clear(ctx context.Context) error
}

// identitySource exposes the signed-in identity.
type identitySource interface {
	Current() session.Identity
}
