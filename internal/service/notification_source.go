// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-desk/internal/live"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/internal/store"
	"github.com/MKhiriev/go-task-desk/internal/subscription"
	"github.com/MKhiriev/go-task-desk/internal/view"
	"github.com/MKhiriev/go-task-desk/models"
)

const (
	notificationsTopic = "notifications"
	notificationsKind  = "notifications"

	// notificationHistory is how many stored notifications are reloaded.
	notificationHistory = 100
)

type idGenerator interface {
	Generate() string
}

// notificationSource turns task changes into notifications for the current
// user and keeps them in the local history.
type notificationSource struct {
	repo store.NotificationRepository
	ids  idGenerator
}

func newNotificationSource(repo store.NotificationRepository, ids idGenerator) *notificationSource {
	return &notificationSource{repo: repo, ids: ids}
}

func (s *notificationSource) Topic() string { return notificationsTopic }
func (s *notificationSource) Table() string { return tasksTable }

// FetchAll reloads the stored history.
func (s *notificationSource) FetchAll(ctx context.Context, id session.Identity) ([]models.Notification, error) {
	list, err := s.repo.ListNotifications(ctx, id.UserID(), notificationHistory)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return list, nil
}

// FetchIsAuthoritative is false: the history is written by Resolve, so a
// reload can race the save of a change that arrived before it.
func (s *notificationSource) FetchIsAuthoritative() bool { return false }

// Decode derives a notification from an insert or update of a task the user
// follows. Deletes do not notify.
func (s *notificationSource) Decode(change realtime.Change, id session.Identity) (live.Event[models.Notification], error) {
	if change.Type == realtime.Delete {
		return live.Event[models.Notification]{}, subscription.ErrSkip
	}
	if change.Type != realtime.Insert && change.Type != realtime.Update {
		return live.Event[models.Notification]{}, fmt.Errorf("%w: %q", realtime.ErrUnknownChangeType, change.Type)
	}

	var task models.Task
	if err := change.DecodeRecord(&task); err != nil {
		return live.Event[models.Notification]{}, err
	}
	if !view.CanSee(task, id.Profile) {
		return live.Event[models.Notification]{}, subscription.ErrSkip
	}

	var old *models.Task
	if change.Type == realtime.Update {
		var prev models.Task
		hasOld, err := change.DecodeOldRecord(&prev)
		if err != nil {
			return live.Event[models.Notification]{}, err
		}
		if hasOld {
			old = &prev
		}
	}

	typ, message := describeChange(change.Type, old, task, id.UserID())
	n := models.Notification{
		ID:        s.ids.Generate(),
		Message:   message,
		Type:      typ,
		Timestamp: change.ReceivedAt,
		TaskID:    task.ID,
		TaskTitle: task.Title,
	}
	return live.CreatedEvent(notificationsKind, n, change.ReceivedAt), nil
}

// Resolve stores the notification before it is shown. A failed write still
// shows it; it is only missing from the next reload.
func (s *notificationSource) Resolve(ctx context.Context, id session.Identity, ev live.Event[models.Notification]) (live.Event[models.Notification], error) {
	if err := s.repo.SaveNotification(ctx, id.UserID(), ev.New); err != nil {
		return ev, fmt.Errorf("save notification: %w", err)
	}
	return ev, nil
}

// describeChange picks the notification type and text. Completion wins over
// assignment; a before-image missing from the change counts as different.
func describeChange(typ realtime.ChangeType, old *models.Task, task models.Task, userID string) (models.NotificationType, string) {
	if typ == realtime.Insert {
		return models.NotificationTaskCreated, "New task created: " + task.Title
	}

	if task.Status == models.StatusCompleted && (old == nil || old.Status != models.StatusCompleted) {
		return models.NotificationTaskCompleted, "Task completed: " + task.Title
	}
	if task.IsAssignedTo(userID) && (old == nil || !old.IsAssignedTo(userID)) {
		return models.NotificationTaskAssigned, "Task assigned to you: " + task.Title
	}
	return models.NotificationTaskUpdated, "Task updated: " + task.Title
}
