// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-desk/internal/mock"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/internal/store"
	"github.com/MKhiriev/go-task-desk/internal/subscription"
	"github.com/MKhiriev/go-task-desk/models"
)

func newTestFeed(t *testing.T, id session.Identity) (*NotificationFeed, *mock.MockNotificationRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockNotificationRepository(ctrl)

	feed := NewNotificationFeed(repo, mock.NewMockFeed(ctrl), &staticIdentity{id: id}, subscription.Settings{}, nil)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	feed.manager.Collection().Initialize([]models.Notification{
		{ID: "n1", Message: "Task updated: A", Timestamp: base},
		{ID: "n2", Message: "Task updated: B", Timestamp: base.Add(time.Minute), Read: true},
		{ID: "n3", Message: "Task updated: C", Timestamp: base.Add(2 * time.Minute)},
	}, time.Time{})
	return feed, repo
}

func TestNotificationFeed_NewestFirst(t *testing.T) {
	feed, _ := newTestFeed(t, identityOf("u1", models.RoleStaff))

	list := feed.Notifications()
	require.Len(t, list, 3)
	assert.Equal(t, "n3", list[0].ID)
	assert.Equal(t, "n2", list[1].ID)
	assert.Equal(t, "n1", list[2].ID)
	assert.Equal(t, 2, feed.UnreadCount())
}

func TestNotificationFeed_MarkRead(t *testing.T) {
	feed, repo := newTestFeed(t, identityOf("u1", models.RoleStaff))
	ctx := context.Background()

	repo.EXPECT().MarkRead(ctx, "u1", "n1").Return(nil)
	require.NoError(t, feed.MarkRead(ctx, "n1"))
	assert.Equal(t, 1, feed.UnreadCount())

	repo.EXPECT().MarkRead(ctx, "u1", "zz").Return(store.ErrNotificationNotFound)
	assert.ErrorIs(t, feed.MarkRead(ctx, "zz"), ErrNotificationNotFound)
}

func TestNotificationFeed_MarkAllRead(t *testing.T) {
	feed, repo := newTestFeed(t, identityOf("u1", models.RoleStaff))
	ctx := context.Background()

	repo.EXPECT().MarkAllRead(ctx, "u1").Return(int64(2), nil)
	require.NoError(t, feed.MarkAllRead(ctx))
	assert.Zero(t, feed.UnreadCount())
	assert.Len(t, feed.Notifications(), 3)
}

func TestNotificationFeed_Clear(t *testing.T) {
	feed, repo := newTestFeed(t, identityOf("u1", models.RoleStaff))
	ctx := context.Background()

	repo.EXPECT().ClearNotifications(ctx, "u1").Return(nil)
	require.NoError(t, feed.Clear(ctx))
	assert.Empty(t, feed.Notifications())
	assert.Zero(t, feed.UnreadCount())
}

func TestNotificationFeed_NotSignedIn(t *testing.T) {
	feed, _ := newTestFeed(t, session.Identity{})
	ctx := context.Background()

	assert.ErrorIs(t, feed.MarkRead(ctx, "n1"), ErrNotSignedIn)
	assert.ErrorIs(t, feed.MarkAllRead(ctx), ErrNotSignedIn)
	assert.ErrorIs(t, feed.Clear(ctx), ErrNotSignedIn)
}

// slowHistory saves slower than the reload reads, so a reload can miss
// notifications whose save started before it.
type slowHistory struct {
	mu    sync.Mutex
	saved []models.Notification
}

func (h *slowHistory) SaveNotification(_ context.Context, _ string, n models.Notification) error {
	time.Sleep(20 * time.Millisecond)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saved = append(h.saved, n)
	return nil
}

func (h *slowHistory) ListNotifications(context.Context, string, uint64) ([]models.Notification, error) {
	h.mu.Lock()
	list := append([]models.Notification(nil), h.saved...)
	h.mu.Unlock()
	time.Sleep(100 * time.Millisecond)
	return list, nil
}

func (h *slowHistory) stored() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.saved)
}

func (h *slowHistory) MarkRead(context.Context, string, string) error     { return nil }
func (h *slowHistory) MarkAllRead(context.Context, string) (int64, error) { return 0, nil }
func (h *slowHistory) ClearNotifications(context.Context, string) error   { return nil }

// TestNotificationFeed_ChangesBeforeReloadAreShown covers changes that reach
// the channel before the history reload and are saved only after it read.
func TestNotificationFeed_ChangesBeforeReloadAreShown(t *testing.T) {
	ctrl := gomock.NewController(t)
	id := identityOf("u1", models.RoleStaff)

	events := make(chan realtime.Change, 2)
	events <- rowChange(t, realtime.Insert, taskFor("t1", "Audit", "u1", ""), nil)
	events <- rowChange(t, realtime.Insert, taskFor("t2", "Review", "u1", ""), nil)

	ch := mock.NewMockChannel(ctrl)
	ch.EXPECT().Events().Return(events).AnyTimes()
	ch.EXPECT().Done().Return(make(chan struct{})).AnyTimes()
	ch.EXPECT().Err().Return(nil).AnyTimes()
	ch.EXPECT().Close().Return(nil).AnyTimes()

	rt := mock.NewMockFeed(ctrl)
	rt.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(ch, nil)

	history := &slowHistory{}
	feed := NewNotificationFeed(history, rt, &staticIdentity{id: id},
		subscription.Settings{RetryBase: 5 * time.Millisecond, RetryMax: 20 * time.Millisecond}, nil)
	feed.Manager().Start(context.Background())
	t.Cleanup(feed.Manager().Stop)

	feed.Manager().HandleSession(session.IdentityChanged{Next: id})

	require.Eventually(t, func() bool {
		return feed.Status().State == subscription.Live && history.stored() == 2
	}, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(feed.Notifications()) == 2 }, 2*time.Second, 5*time.Millisecond)

	// ни одно уведомление не потеряно
	titles := []string{feed.Notifications()[0].TaskTitle, feed.Notifications()[1].TaskTitle}
	assert.ElementsMatch(t, []string{"Audit", "Review"}, titles)
	assert.Equal(t, 2, feed.UnreadCount())
}
