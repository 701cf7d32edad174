// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-desk/internal/adapter"
	"github.com/MKhiriev/go-task-desk/internal/live"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/subscription"
	"github.com/MKhiriev/go-task-desk/internal/validators"
	"github.com/MKhiriev/go-task-desk/internal/view"
	"github.com/MKhiriev/go-task-desk/models"
)

// TaskBoard is the live task list of the signed-in user. Reads come from a
// subscription-managed collection; writes go to the backend and are
// reflected locally ahead of the change feed.
type TaskBoard struct {
	manager   *subscription.Manager[models.Task]
	server    adapter.ServerAdapter
	identity  identitySource
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

// NewTaskBoard wires a TaskBoard over server and feed. The board is idle
// until Start and follows identity changes passed to HandleSession.
func NewTaskBoard(server adapter.ServerAdapter, feed realtime.Feed, identity identitySource, settings subscription.Settings, log *logger.Logger) *TaskBoard {
	if log == nil {
		log = logger.Nop()
	}
	coll := live.New(func(t models.Task) string { return t.ID },
		live.WithOrder(view.TaskOrder),
		live.WithLogger[models.Task](log.WithComponent("tasks")),
	)
	source := newTaskSource(server, coll)

	return &TaskBoard{
		manager:   subscription.New[models.Task](source, feed, coll, settings, log),
		server:    server,
		identity:  identity,
		validator: validators.NewTaskValidator(),
		now:       time.Now,
		logger:    log,
	}
}

// Manager exposes the subscription manager for lifecycle wiring.
func (b *TaskBoard) Manager() *subscription.Manager[models.Task] {
	return b.manager
}

func (b *TaskBoard) Tasks() []models.Task               { return b.manager.Snapshot() }
func (b *TaskBoard) Loading() bool                      { return b.manager.Loading() }
func (b *TaskBoard) Err() error                         { return b.manager.Err() }
func (b *TaskBoard) Stale() bool                        { return b.manager.Stale() }
func (b *TaskBoard) Status() subscription.Status        { return b.manager.Status() }
func (b *TaskBoard) Changes() (<-chan struct{}, func()) { return b.manager.Changes() }

// Mutate validates patch, applies it to the listed task and writes it to
// the backend. The backend response is not applied: the change feed
// delivers the authoritative row.
func (b *TaskBoard) Mutate(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	if patch.IsEmpty() {
		return models.Task{}, ErrEmptyPatch
	}
	if err := b.validator.Validate(ctx, patch); err != nil {
		return models.Task{}, err
	}
	if b.identity.Current().IsZero() {
		return models.Task{}, ErrNotSignedIn
	}

	now := b.now()
	rollback, ok := b.manager.Collection().MutateLocal(id, func(t models.Task) models.Task {
		return patch.Apply(t, now)
	})
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}

	updated, err := b.server.UpdateTask(ctx, id, patch)
	if err != nil {
		if !rollback() {
			b.logger.Debug().Str("func", "TaskBoard.Mutate").Str("id", id).Msg("task changed on server, keeping server image")
		}
		b.logger.Err(err).Str("func", "TaskBoard.Mutate").Str("id", id).Msg("task update failed")
		return models.Task{}, mapAdapterError(err)
	}
	return updated, nil
}

// ToggleComplete marks an open task completed, and a completed one pending.
func (b *TaskBoard) ToggleComplete(ctx context.Context, id string) (models.Task, error) {
	task, ok := b.manager.Collection().Get(id)
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}

	status := models.StatusCompleted
	progress := 100
	if task.Status == models.StatusCompleted {
		status = models.StatusPending
		progress = task.Progress
		if progress == 100 {
			progress = 0
		}
	}
	return b.Mutate(ctx, id, models.TaskPatch{Status: &status, Progress: &progress})
}

// Create inserts a task created by the signed-in user. Missing status and
// priority default to pending and medium.
func (b *TaskBoard) Create(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	id := b.identity.Current()
	if id.IsZero() {
		return models.Task{}, ErrNotSignedIn
	}

	draft.Title = strings.TrimSpace(draft.Title)
	if err := b.validator.Validate(ctx, draft); err != nil {
		return models.Task{}, err
	}
	if draft.Status == "" {
		draft.Status = models.StatusPending
	}
	if draft.Priority == "" {
		draft.Priority = models.PriorityMedium
	}
	userID := id.UserID()
	draft.CreatedBy = &userID

	task, err := b.server.CreateTask(ctx, draft)
	if err != nil {
		b.logger.Err(err).Str("func", "TaskBoard.Create").Msg("task create failed")
		return models.Task{}, mapAdapterError(err)
	}

	// the insert event re-resolves joins; until then show the row as returned
	b.manager.Collection().ApplyCreated(task)
	return task, nil
}

// Delete removes a task on the backend and from the list.
func (b *TaskBoard) Delete(ctx context.Context, id string) error {
	if b.identity.Current().IsZero() {
		return ErrNotSignedIn
	}
	if err := b.server.DeleteTask(ctx, id); err != nil {
		b.logger.Err(err).Str("func", "TaskBoard.Delete").Str("id", id).Msg("task delete failed")
		return mapAdapterError(err)
	}
	b.manager.Collection().ApplyDeleted(id)
	return nil
}
