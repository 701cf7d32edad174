// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-task-desk/internal/live"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/store"
	"github.com/MKhiriev/go-task-desk/internal/subscription"
	"github.com/MKhiriev/go-task-desk/internal/utils"
	"github.com/MKhiriev/go-task-desk/internal/view"
	"github.com/MKhiriev/go-task-desk/models"
)

// NotificationFeed keeps the notification history of the signed-in user.
//
// Notifications exist only on this device, so the read-state actions write
// the local store and then the collection directly; there is no server echo
// to wait for.
type NotificationFeed struct {
	manager  *subscription.Manager[models.Notification]
	repo     store.NotificationRepository
	identity identitySource
	logger   *logger.Logger
}

// NewNotificationFeed wires a NotificationFeed listening to task changes on
// feed.
func NewNotificationFeed(repo store.NotificationRepository, feed realtime.Feed, identity identitySource, settings subscription.Settings, log *logger.Logger) *NotificationFeed {
	if log == nil {
		log = logger.Nop()
	}
	coll := live.New(func(n models.Notification) string { return n.ID },
		live.WithOrder(newestFirst),
		live.WithLogger[models.Notification](log.WithComponent("notifications")),
	)
	source := newNotificationSource(repo, utils.NewUUIDGenerator())

	return &NotificationFeed{
		manager:  subscription.New[models.Notification](source, feed, coll, settings, log),
		repo:     repo,
		identity: identity,
		logger:   log,
	}
}

func (f *NotificationFeed) Manager() *subscription.Manager[models.Notification] {
	return f.manager
}

func (f *NotificationFeed) Notifications() []models.Notification { return f.manager.Snapshot() }
func (f *NotificationFeed) Status() subscription.Status          { return f.manager.Status() }
func (f *NotificationFeed) Changes() (<-chan struct{}, func())   { return f.manager.Changes() }

func (f *NotificationFeed) UnreadCount() int {
	return view.UnreadCount(f.manager.Snapshot())
}

// MarkRead flags one notification as read.
func (f *NotificationFeed) MarkRead(ctx context.Context, id string) error {
	userID, err := f.userID()
	if err != nil {
		return err
	}
	if err = f.repo.MarkRead(ctx, userID, id); err != nil {
		return mapStoreError(err)
	}
	f.manager.Collection().MutateLocal(id, func(n models.Notification) models.Notification {
		n.Read = true
		return n
	})
	return nil
}

// MarkAllRead flags the whole history as read.
func (f *NotificationFeed) MarkAllRead(ctx context.Context) error {
	userID, err := f.userID()
	if err != nil {
		return err
	}
	changed, err := f.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return mapStoreError(err)
	}

	coll := f.manager.Collection()
	for _, n := range coll.Snapshot() {
		if n.Read {
			continue
		}
		coll.MutateLocal(n.ID, func(n models.Notification) models.Notification {
			n.Read = true
			return n
		})
	}
	f.logger.Debug().Str("func", "NotificationFeed.MarkAllRead").Int64("changed", changed).Msg("notifications marked read")
	return nil
}

// Clear deletes the history.
func (f *NotificationFeed) Clear(ctx context.Context) error {
	userID, err := f.userID()
	if err != nil {
		return err
	}
	if err = f.repo.ClearNotifications(ctx, userID); err != nil {
		return mapStoreError(err)
	}

	coll := f.manager.Collection()
	for _, n := range coll.Snapshot() {
		coll.ApplyDeleted(n.ID)
	}
	return nil
}

func (f *NotificationFeed) userID() (string, error) {
	id := f.identity.Current()
	if id.IsZero() {
		return "", ErrNotSignedIn
	}
	return id.UserID(), nil
}

func newestFirst(a, b models.Notification) bool {
	return a.Timestamp.After(b.Timestamp)
}
