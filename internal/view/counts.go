// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"math"
	"time"

	"github.com/MKhiriev/go-task-desk/models"
)

// Counts are the headline figures of a dashboard.
type Counts struct {
	Total     int
	Completed int

	// Pending counts tasks that are pending or in progress.
	Pending int

	InReview int
	Overdue  int

	// CompletionRate is Completed/Total as a rounded percentage, 0 when
	// there are no tasks.
	CompletionRate int
}

// IsOverdue reports whether t has a due date strictly before now and is not
// in a terminal status.
func IsOverdue(t models.Task, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Status.IsTerminal()
}

// Count computes the headline figures of tasks at now.
func Count(tasks []models.Task, now time.Time) Counts {
	var c Counts
	c.Total = len(tasks)
	for _, t := range tasks {
		switch {
		case t.Status == models.StatusCompleted:
			c.Completed++
		case t.Status.IsOpen():
			c.Pending++
		case t.Status == models.StatusReview:
			c.InReview++
		}
		if IsOverdue(t, now) {
			c.Overdue++
		}
	}
	if c.Total > 0 {
		c.CompletionRate = int(math.Round(float64(c.Completed) * 100 / float64(c.Total)))
	}
	return c
}

// UnreadCount returns the number of unread notifications.
func UnreadCount(notifications []models.Notification) int {
	n := 0
	for _, item := range notifications {
		if !item.Read {
			n++
		}
	}
	return n
}

// Greeting returns the salutation for the local hour of now.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
