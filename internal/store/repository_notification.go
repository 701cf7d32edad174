// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/models"
)

// notificationRepository is the SQLite-backed [NotificationRepository].
// Every query is scoped by user id so histories of different accounts on the
// same device never mix.
type notificationRepository struct {
	*DB
	logger *logger.Logger
}

// NewNotificationRepository constructs a [NotificationRepository] backed by
// the provided database connection and logger.
func NewNotificationRepository(db *DB, logger *logger.Logger) NotificationRepository {
	return &notificationRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *notificationRepository) SaveNotification(ctx context.Context, userID string, n models.Notification) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveNotificationQuery(userID, n)
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "notificationRepository.SaveNotification").
			Str("user_id", userID).
			Str("id", n.ID).
			Msg("failed to insert notification")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *notificationRepository) ListNotifications(ctx context.Context, userID string, limit uint64) ([]models.Notification, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotificationsQuery(userID, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "notificationRepository.ListNotifications").
			Str("user_id", userID).
			Msg("failed to query notifications")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Notification
	for rows.Next() {
		var (
			n   models.Notification
			typ string
		)
		if err = rows.Scan(&n.ID, &n.TaskID, &n.TaskTitle, &typ, &n.Message, &n.Timestamp, &n.Read); err != nil {
			log.Err(err).
				Str("func", "notificationRepository.ListNotifications").
				Str("user_id", userID).
				Msg("failed to scan notification row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		n.Type = models.NotificationType(typ)
		items = append(items, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	query, args, err := buildMarkReadQuery(userID, id)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "notificationRepository.MarkRead").
			Str("id", id).
			Msg("failed to mark notification read")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	query, args, err := buildMarkAllReadQuery(userID)
	if err != nil {
		return 0, err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "notificationRepository.MarkAllRead").
			Str("user_id", userID).
			Msg("failed to mark notifications read")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n, nil
}

func (r *notificationRepository) ClearNotifications(ctx context.Context, userID string) error {
	query, args, err := buildClearNotificationsQuery(userID)
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "notificationRepository.ClearNotifications").
			Str("user_id", userID).
			Msg("failed to clear notifications")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
