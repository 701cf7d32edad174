// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-desk/models"
)

type taskFixture struct {
	backend *Backend
	admin   models.Profile
	staff   models.Profile
	company string
}

func newTaskFixture(t *testing.T) taskFixture {
	t.Helper()
	b := newTestBackend(t)

	admin, err := b.AddUser("admin@example.com", "secret", "Ann Admin", models.RoleAdmin)
	require.NoError(t, err)
	staff, err := b.AddUser("staff@example.com", "secret", "Sam Staff", models.RoleStaff)
	require.NoError(t, err)

	return taskFixture{backend: b, admin: admin, staff: staff, company: b.AddCompany("Acme Ltd")}
}

func rawFields(t *testing.T, fields map[string]any) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		out[k] = raw
	}
	return out
}

func TestBackend_CreateTask(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.backend.CreateTask(f.staff, models.TaskDraft{
		Title:      "  VAT return ",
		CompanyID:  &f.company,
		AssigneeID: &f.staff.ID,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "VAT return", task.Title)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.True(t, task.IsCreatedBy(f.staff.ID))
	assert.Equal(t, "Acme Ltd", task.CompanyName())
	assert.Equal(t, "Sam Staff", task.AssigneeName())
	assert.Nil(t, task.CompletedAt)

	_, err = f.backend.CreateTask(f.staff, models.TaskDraft{Title: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.backend.CreateTask(f.staff, models.TaskDraft{Title: "x", Progress: 101})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBackend_Visibility(t *testing.T) {
	f := newTaskFixture(t)

	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	later := due.AddDate(0, 1, 0)

	mine, err := f.backend.CreateTask(f.admin, models.TaskDraft{Title: "Mine", AssigneeID: &f.staff.ID, DueDate: &later})
	require.NoError(t, err)
	other, err := f.backend.CreateTask(f.admin, models.TaskDraft{Title: "Other", DueDate: &due})
	require.NoError(t, err)
	undated, err := f.backend.CreateTask(f.admin, models.TaskDraft{Title: "Undated"})
	require.NoError(t, err)

	all := f.backend.ListTasks(f.admin)
	require.Len(t, all, 3)
	assert.Equal(t, []string{other.ID, mine.ID, undated.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	staffTasks := f.backend.ListTasks(f.staff)
	require.Len(t, staffTasks, 1)
	assert.Equal(t, mine.ID, staffTasks[0].ID)

	_, err = f.backend.GetTask(f.staff, other.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = f.backend.UpdateTask(f.staff, other.ID, rawFields(t, map[string]any{"title": "x"}))
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, f.backend.DeleteTask(f.staff, other.ID), ErrTaskNotFound)

	got, err := f.backend.GetTask(f.staff, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
}

func TestBackend_UpdateTask(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.backend.CreateTask(f.admin, models.TaskDraft{Title: "Payroll", AssigneeID: &f.staff.ID})
	require.NoError(t, err)

	t.Run("completion stamps completed_at", func(t *testing.T) {
		updated, err := f.backend.UpdateTask(f.staff, task.ID, rawFields(t, map[string]any{
			"status":   models.StatusCompleted,
			"progress": 100,
		}))
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)
		require.NotNil(t, updated.CompletedAt)
		assert.False(t, updated.UpdatedAt.Before(task.UpdatedAt))
		assert.Equal(t, task.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "Sam Staff", updated.AssigneeName())
	})

	t.Run("reopening clears completed_at", func(t *testing.T) {
		updated, err := f.backend.UpdateTask(f.staff, task.ID, rawFields(t, map[string]any{"status": models.StatusPending}))
		require.NoError(t, err)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("unassign", func(t *testing.T) {
		updated, err := f.backend.UpdateTask(f.admin, task.ID, rawFields(t, map[string]any{"assignee_id": nil}))
		require.NoError(t, err)
		assert.Nil(t, updated.AssigneeID)
		assert.Equal(t, "Unassigned", updated.AssigneeName())

		// staff создавал задачу не сам, после снятия назначения она пропадает
		_, err = f.backend.GetTask(f.staff, task.ID)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("rejected patches", func(t *testing.T) {
		_, err := f.backend.UpdateTask(f.admin, task.ID, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.backend.UpdateTask(f.admin, task.ID, rawFields(t, map[string]any{"id": "other"}))
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.backend.UpdateTask(f.admin, task.ID, rawFields(t, map[string]any{"status": "archived"}))
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.backend.UpdateTask(f.admin, task.ID, rawFields(t, map[string]any{"progress": "half"}))
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.backend.UpdateTask(f.admin, "missing", rawFields(t, map[string]any{"title": "x"}))
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestBackend_DeleteTask(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.backend.CreateTask(f.staff, models.TaskDraft{Title: "Bookkeeping"})
	require.NoError(t, err)

	require.NoError(t, f.backend.DeleteTask(f.staff, task.ID))
	assert.Empty(t, f.backend.ListTasks(f.admin))
	assert.ErrorIs(t, f.backend.DeleteTask(f.staff, task.ID), ErrTaskNotFound)
}
