// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-task-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionRepository persists the single signed-in session of this device.
type SessionRepository interface {
	SaveSession(ctx context.Context, s models.Session) error
	// LoadSession returns ErrLocalSessionNotFound when nothing is stored.
	LoadSession(ctx context.Context) (models.Session, error)
	DeleteSession(ctx context.Context) error
}

// NotificationRepository keeps the per-user notification history.
type NotificationRepository interface {
	// SaveNotification stores n for userID. Saving an id twice is a no-op.
	SaveNotification(ctx context.Context, userID string, n models.Notification) error
	// ListNotifications returns up to limit notifications, newest first.
	ListNotifications(ctx context.Context, userID string, limit uint64) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	// MarkAllRead returns how many notifications changed.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	ClearNotifications(ctx context.Context, userID string) error
}
