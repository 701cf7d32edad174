// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/models"
)

var testReceivedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type staticIdentity struct {
	id session.Identity
}

func (s *staticIdentity) Current() session.Identity { return s.id }

func identityOf(userID string, role models.Role) session.Identity {
	return session.Identity{
		Session: models.Session{UserID: userID, AccessToken: "token-" + userID},
		Profile: models.Profile{ID: userID, Role: role},
	}
}

func strPtr(s string) *string { return &s }

func taskFor(id, title string, assignee, creator string) models.Task {
	t := models.Task{
		ID:       id,
		Title:    title,
		Status:   models.StatusPending,
		Priority: models.PriorityMedium,
	}
	if assignee != "" {
		t.AssigneeID = strPtr(assignee)
	}
	if creator != "" {
		t.CreatedBy = strPtr(creator)
	}
	return t
}

// rowChange собирает событие realtime из образов строки.
func rowChange(t *testing.T, typ realtime.ChangeType, record, old any) realtime.Change {
	t.Helper()

	c := realtime.Change{Type: typ, Schema: "public", Table: tasksTable, ReceivedAt: testReceivedAt}
	if record != nil {
		raw, err := json.Marshal(record)
		require.NoError(t, err)
		c.Record = raw
	}
	if old != nil {
		raw, err := json.Marshal(old)
		require.NoError(t, err)
		c.OldRecord = raw
	}
	return c
}
