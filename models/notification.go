// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// NotificationType classifies what happened to the task that produced a
// notification.
type NotificationType string

const (
	NotificationTaskCreated   NotificationType = "task_created"
	NotificationTaskUpdated   NotificationType = "task_updated"
	NotificationTaskCompleted NotificationType = "task_completed"
	NotificationTaskAssigned  NotificationType = "task_assigned"
)

// Notification is an alert derived from a task change event and surfaced to
// the current user.
type Notification struct {
	// ID is unique per notification; several notifications may reference
	// the same task.
	ID string `json:"id"`

	// Message is the human-readable text, e.g. "Task completed: MGT-7".
	Message string `json:"message"`

	Type NotificationType `json:"type"`

	// Timestamp is when the originating event was received.
	Timestamp time.Time `json:"timestamp"`

	TaskID    string `json:"task_id"`
	TaskTitle string `json:"task_title"`

	// Read is flipped by the user from the notification panel.
	Read bool `json:"read"`
}
