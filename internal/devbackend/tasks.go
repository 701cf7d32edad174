// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/view"
	"github.com/MKhiriev/go-task-desk/models"
)

// writableColumns are the task columns a PATCH may set.
var writableColumns = map[string]bool{
	"title":          true,
	"description":    true,
	"company_id":     true,
	"assignee_id":    true,
	"status":         true,
	"priority":       true,
	"due_date":       true,
	"progress":       true,
	"tags":           true,
	"parent_task_id": true,
	"completed_at":   true,
	"updated_at":     true,
}

// ListTasks returns the tasks viewer may see, due date ascending with
// undated tasks last, joins filled.
func (b *Backend) ListTasks(viewer models.Profile) []models.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if view.CanSee(t, viewer) {
			out = append(out, b.joinedLocked(t))
		}
	}
	slices.SortFunc(out, func(a, c models.Task) int { return strings.Compare(a.ID, c.ID) })
	return view.SortTasks(out, view.ByDueDate)
}

// GetTask returns one visible task with joins.
func (b *Backend) GetTask(viewer models.Profile, id string) (models.Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	t, ok := b.tasks[id]
	if !ok || !view.CanSee(t, viewer) {
		return models.Task{}, ErrTaskNotFound
	}
	return b.joinedLocked(t), nil
}

// CreateTask inserts a task. Status defaults to pending, priority to medium
// and CreatedBy to the viewer.
func (b *Backend) CreateTask(viewer models.Profile, draft models.TaskDraft) (models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now().UTC()
	t := models.Task{
		ID:          b.ids.Generate(),
		Title:       strings.TrimSpace(draft.Title),
		Description: clonePtr(draft.Description),
		CompanyID:   clonePtr(draft.CompanyID),
		AssigneeID:  clonePtr(draft.AssigneeID),
		CreatedBy:   clonePtr(draft.CreatedBy),
		Status:      draft.Status,
		Priority:    draft.Priority,
		DueDate:     clonePtr(draft.DueDate),
		Progress:    draft.Progress,
		Tags:        slices.Clone(draft.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.CreatedBy == nil {
		id := viewer.ID
		t.CreatedBy = &id
	}
	if t.Status == models.StatusCompleted {
		t.CompletedAt = &now
	}
	if err := b.validateTask(t); err != nil {
		return models.Task{}, err
	}

	b.tasks[t.ID] = t
	b.publishLocked(realtime.Insert, nil, &t)

	return b.joinedLocked(t), nil
}

// UpdateTask applies the column values in fields to a visible task.
// updated_at is always stamped; completed_at is set when the status becomes
// completed and cleared for any other status.
func (b *Backend) UpdateTask(viewer models.Profile, id string, fields map[string]json.RawMessage) (models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old, ok := b.tasks[id]
	if !ok || !view.CanSee(old, viewer) {
		return models.Task{}, ErrTaskNotFound
	}

	updated, err := applyFields(old, fields)
	if err != nil {
		return models.Task{}, err
	}

	now := b.now().UTC()
	updated.ID = old.ID
	updated.CreatedAt = old.CreatedAt
	updated.UpdatedAt = now
	switch {
	case updated.Status != models.StatusCompleted:
		updated.CompletedAt = nil
	case updated.CompletedAt == nil || old.Status != models.StatusCompleted:
		updated.CompletedAt = &now
	}
	if err = b.validateTask(updated); err != nil {
		return models.Task{}, err
	}

	b.tasks[id] = updated
	b.publishLocked(realtime.Update, &old, &updated)

	return b.joinedLocked(updated), nil
}

// DeleteTask removes a visible task.
func (b *Backend) DeleteTask(viewer models.Profile, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	old, ok := b.tasks[id]
	if !ok || !view.CanSee(old, viewer) {
		return ErrTaskNotFound
	}

	delete(b.tasks, id)
	b.publishLocked(realtime.Delete, &old, nil)
	return nil
}

// publishLocked hands the change to the hub while the write lock is held so
// that channels receive changes in commit order.
func (b *Backend) publishLocked(typ realtime.ChangeType, old, row *models.Task) {
	change := RowChange{
		Table:           TasksTable,
		Type:            typ,
		CommitTimestamp: b.now().UTC(),
		VisibleTo: func(p models.Profile) bool {
			return (row != nil && view.CanSee(*row, p)) || (old != nil && view.CanSee(*old, p))
		},
	}
	// change-feed images carry raw columns only
	if row != nil {
		change.Record = *row
	}
	if old != nil {
		change.OldRecord = *old
	}
	b.hub.Publish(change)
}

func (b *Backend) joinedLocked(t models.Task) models.Task {
	if t.CompanyID != nil {
		if name, ok := b.companies[*t.CompanyID]; ok {
			t.Company = &models.CompanyRef{Name: name}
		}
	}
	if t.AssigneeID != nil {
		if p, ok := b.profiles[*t.AssigneeID]; ok {
			t.Assignee = &models.AssigneeRef{FullName: p.FullName, AvatarURL: p.AvatarURL}
		}
	}
	return t
}

func applyFields(t models.Task, fields map[string]json.RawMessage) (models.Task, error) {
	if len(fields) == 0 {
		return models.Task{}, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}

	raw, err := json.Marshal(t)
	if err != nil {
		return models.Task{}, fmt.Errorf("encode task: %w", err)
	}
	var row map[string]json.RawMessage
	if err = json.Unmarshal(raw, &row); err != nil {
		return models.Task{}, fmt.Errorf("decode task: %w", err)
	}

	for column, value := range fields {
		if !writableColumns[column] {
			return models.Task{}, fmt.Errorf("%w: column %q is not writable", ErrInvalidInput, column)
		}
		row[column] = value
	}

	if raw, err = json.Marshal(row); err != nil {
		return models.Task{}, fmt.Errorf("encode patched task: %w", err)
	}
	var out models.Task
	if err = json.Unmarshal(raw, &out); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	out.Company, out.Assignee = nil, nil
	return out, nil
}

func (b *Backend) validateTask(t models.Task) error {
	if err := b.validator.Validate(context.Background(), t); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
