// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-task-desk/internal/config"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &DB{DB: db, logger: logger.Nop()}, mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// ── session ─────────────────────────────────────────────────────────────────

func TestSessionRepository_Save(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop()).(*sessionRepository)
	repo.now = func() time.Time { return testNow }

	sess := models.Session{UserID: "u-1", AccessToken: "a", RefreshToken: "r", ExpiresAt: testNow.Add(time.Hour)}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO local_session (id,user_id,access_token,refresh_token,expires_at,saved_at) VALUES (?,?,?,?,?,?) ON CONFLICT(id) DO UPDATE")).
		WithArgs(1, "u-1", "a", "r", testNow.Add(time.Hour), testNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveSession(testContext(), sess))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_SaveError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO local_session").WillReturnError(errors.New("disk full"))

	err := repo.SaveSession(testContext(), models.Session{UserID: "u-1", AccessToken: "a"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestSessionRepository_Load(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, access_token, refresh_token, expires_at FROM local_session WHERE id = ?")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(sessionColumns).AddRow("u-1", "a", "r", testNow))

	sess, err := repo.LoadSession(testContext())
	require.NoError(t, err)
	assert.Equal(t, models.Session{UserID: "u-1", AccessToken: "a", RefreshToken: "r", ExpiresAt: testNow}, sess)
}

func TestSessionRepository_LoadNothingStored(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectQuery("FROM local_session").WillReturnRows(sqlmock.NewRows(sessionColumns))

	_, err := repo.LoadSession(testContext())
	assert.ErrorIs(t, err, ErrLocalSessionNotFound)
}

func TestSessionRepository_LoadNullExpiry(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectQuery("FROM local_session").
		WillReturnRows(sqlmock.NewRows(sessionColumns).AddRow("u-1", "a", "", nil))

	sess, err := repo.LoadSession(testContext())
	require.NoError(t, err)
	assert.True(t, sess.ExpiresAt.IsZero())
}

func TestSessionRepository_Delete(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM local_session")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteSession(testContext()))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── notifications ───────────────────────────────────────────────────────────

func TestNotificationRepository_Save(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewNotificationRepository(db, logger.Nop())

	n := models.Notification{
		ID: "n-1", TaskID: "t-1", TaskTitle: "Annual return",
		Type: models.NotificationTaskCompleted, Message: "Task completed: Annual return",
		Timestamp: testNow,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT OR IGNORE INTO notifications")).
		WithArgs("n-1", "u-1", "t-1", "Annual return", "task_completed", "Task completed: Annual return", testNow, false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveNotification(testContext(), "u-1", n))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_List(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewNotificationRepository(db, logger.Nop())

	rows := sqlmock.NewRows(notificationColumns).
		AddRow("n-2", "t-2", "VAT", "task_created", "New task: VAT", testNow, false).
		AddRow("n-1", "t-1", "Annual return", "task_updated", "Task updated: Annual return", testNow.Add(-time.Minute), true)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 50")).
		WithArgs("u-1").
		WillReturnRows(rows)

	items, err := repo.ListNotifications(testContext(), "u-1", 50)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "n-2", items[0].ID)
	assert.Equal(t, models.NotificationTaskCreated, items[0].Type)
	assert.False(t, items[0].Read)
	assert.True(t, items[1].Read)
}

func TestNotificationRepository_ListQueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewNotificationRepository(db, logger.Nop())

	mock.ExpectQuery("FROM notifications").WillReturnError(sql.ErrConnDone)

	_, err := repo.ListNotifications(testContext(), "u-1", 0)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewNotificationRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET read = ? WHERE id = ? AND user_id = ?")).
		WithArgs(true, "n-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE notifications").
		WithArgs(true, "n-404", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkRead(testContext(), "u-1", "n-1"))
	assert.ErrorIs(t, repo.MarkRead(testContext(), "u-1", "n-404"), ErrNotificationNotFound)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewNotificationRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET read = ? WHERE (user_id = ? AND read = ?)")).
		WithArgs(true, "u-1", false).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkAllRead(testContext(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestNotificationRepository_Clear(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewNotificationRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notifications WHERE user_id = ?")).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.ClearNotifications(testContext(), "u-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── sqlite end to end ───────────────────────────────────────────────────────

func TestClientStorages_SQLite(t *testing.T) {
	ctx := testContext()
	dsn := "file:" + filepath.Join(t.TempDir(), "desk.db") + "?_foreign_keys=on"

	st, err := NewClientStorages(ctx, config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	defer st.Close()

	// сессия: пусто → сохранить → перезаписать → удалить
	_, err = st.SessionRepository.LoadSession(ctx)
	require.ErrorIs(t, err, ErrLocalSessionNotFound)

	require.NoError(t, st.SessionRepository.SaveSession(ctx, models.Session{UserID: "u-1", AccessToken: "a1"}))
	require.NoError(t, st.SessionRepository.SaveSession(ctx, models.Session{UserID: "u-1", AccessToken: "a2", ExpiresAt: testNow}))
	sess, err := st.SessionRepository.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", sess.AccessToken)
	assert.True(t, testNow.Equal(sess.ExpiresAt))
	require.NoError(t, st.SessionRepository.DeleteSession(ctx))
	_, err = st.SessionRepository.LoadSession(ctx)
	require.ErrorIs(t, err, ErrLocalSessionNotFound)

	// уведомления изолированы по пользователю
	notes := st.NotificationRepository
	for i, id := range []string{"n-1", "n-2", "n-3"} {
		require.NoError(t, notes.SaveNotification(ctx, "u-1", models.Notification{
			ID: id, TaskID: "t-1", Type: models.NotificationTaskUpdated, Message: id,
			Timestamp: testNow.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, notes.SaveNotification(ctx, "u-1", models.Notification{ID: "n-1", Message: "dup", Timestamp: testNow}))
	require.NoError(t, notes.SaveNotification(ctx, "u-2", models.Notification{ID: "n-9", Message: "other", Timestamp: testNow}))

	items, err := notes.ListNotifications(ctx, "u-1", 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"n-3", "n-2", "n-1"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "n-1", items[2].Message)

	require.NoError(t, notes.MarkRead(ctx, "u-1", "n-2"))
	changed, err := notes.MarkAllRead(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	require.NoError(t, notes.ClearNotifications(ctx, "u-1"))
	items, err = notes.ListNotifications(ctx, "u-1", 10)
	require.NoError(t, err)
	assert.Empty(t, items)

	other, err := notes.ListNotifications(ctx, "u-2", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestSQLiteFilePath(t *testing.T) {
	assert.Equal(t, "desk.db", sqliteFilePath("file:desk.db?_foreign_keys=on"))
	assert.Equal(t, "/tmp/x.db", sqliteFilePath("/tmp/x.db"))
}
