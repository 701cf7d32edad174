// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-task-desk/models"
)

const (
	sessionTable      = "local_session"
	notificationTable = "notifications"

	// the session table holds at most one row
	sessionRowID = 1
)

var (
	sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	sessionColumns      = []string{"user_id", "access_token", "refresh_token", "expires_at"}
	notificationColumns = []string{"id", "task_id", "task_title", "type", "message", "created_at", "read"}
)

func buildSaveSessionQuery(s models.Session, now time.Time) (string, []any, error) {
	var expiresAt any
	if !s.ExpiresAt.IsZero() {
		expiresAt = s.ExpiresAt.UTC()
	}

	query, args, err := sqlite.
		Insert(sessionTable).
		Columns("id", "user_id", "access_token", "refresh_token", "expires_at", "saved_at").
		Values(sessionRowID, s.UserID, s.AccessToken, s.RefreshToken, expiresAt, now.UTC()).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			saved_at = excluded.saved_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildLoadSessionQuery() (string, []any, error) {
	query, args, err := sqlite.
		Select(sessionColumns...).
		From(sessionTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteSessionQuery() (string, []any, error) {
	query, args, err := sqlite.Delete(sessionTable).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSaveNotificationQuery(userID string, n models.Notification) (string, []any, error) {
	query, args, err := sqlite.
		Insert(notificationTable).
		Options("OR IGNORE").
		Columns("id", "user_id", "task_id", "task_title", "type", "message", "created_at", "read").
		Values(n.ID, userID, n.TaskID, n.TaskTitle, string(n.Type), n.Message, n.Timestamp.UTC(), n.Read).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListNotificationsQuery(userID string, limit uint64) (string, []any, error) {
	b := sqlite.
		Select(notificationColumns...).
		From(notificationTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		b = b.Limit(limit)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildMarkReadQuery(userID, id string) (string, []any, error) {
	query, args, err := sqlite.
		Update(notificationTable).
		Set("read", true).
		Where(sq.Eq{"user_id": userID, "id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildMarkAllReadQuery(userID string) (string, []any, error) {
	query, args, err := sqlite.
		Update(notificationTable).
		Set("read", true).
		Where(sq.And{sq.Eq{"user_id": userID}, sq.Eq{"read": false}}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildClearNotificationsQuery(userID string) (string, []any, error) {
	query, args, err := sqlite.
		Delete(notificationTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
