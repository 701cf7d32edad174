// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-desk/internal/adapter"
	"github.com/MKhiriev/go-task-desk/internal/live"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/internal/subscription"
	"github.com/MKhiriev/go-task-desk/internal/view"
	"github.com/MKhiriev/go-task-desk/models"
)

const (
	tasksTopic = "tasks"
	tasksTable = "tasks"
)

// taskSource feeds the task board. Row images from the change feed lack
// the joined company and assignee projections, so every created or updated
// row is re-read through the REST API before it is applied.
type taskSource struct {
	server adapter.ServerAdapter

	// current is consulted to keep joins when a re-read fails.
	current *live.Collection[models.Task]
}

func newTaskSource(server adapter.ServerAdapter, current *live.Collection[models.Task]) *taskSource {
	return &taskSource{server: server, current: current}
}

func (s *taskSource) Topic() string { return tasksTopic }
func (s *taskSource) Table() string { return tasksTable }

func (s *taskSource) FetchAll(ctx context.Context, id session.Identity) ([]models.Task, error) {
	tasks, err := s.server.ListTasks(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return view.Visible(tasks, id.Profile), nil
}

// Decode maps a row change to a list event. A task that stops being
// visible to the user, e.g. reassigned away from a staff member, leaves the
// list as a delete.
func (s *taskSource) Decode(change realtime.Change, id session.Identity) (live.Event[models.Task], error) {
	switch change.Type {
	case realtime.Insert:
		var task models.Task
		if err := change.DecodeRecord(&task); err != nil {
			return live.Event[models.Task]{}, err
		}
		if !view.CanSee(task, id.Profile) {
			return live.Event[models.Task]{}, subscription.ErrSkip
		}
		return live.CreatedEvent(tasksTable, task, change.ReceivedAt), nil

	case realtime.Update:
		var task models.Task
		if err := change.DecodeRecord(&task); err != nil {
			return live.Event[models.Task]{}, err
		}
		if !view.CanSee(task, id.Profile) {
			return live.DeletedEvent[models.Task](tasksTable, task.ID, change.ReceivedAt), nil
		}
		var old models.Task
		hasOld, err := change.DecodeOldRecord(&old)
		if err != nil {
			return live.Event[models.Task]{}, err
		}
		var oldPtr *models.Task
		if hasOld {
			oldPtr = &old
		}
		return live.UpdatedEvent(tasksTable, oldPtr, task, change.ReceivedAt), nil

	case realtime.Delete:
		taskID, err := change.RecordID()
		if err != nil {
			return live.Event[models.Task]{}, err
		}
		return live.DeletedEvent[models.Task](tasksTable, taskID, change.ReceivedAt), nil
	}

	return live.Event[models.Task]{}, fmt.Errorf("%w: %q", realtime.ErrUnknownChangeType, change.Type)
}

// Resolve re-reads created and updated rows to fill their joins. A row the
// backend no longer returns turns into a delete.
func (s *taskSource) Resolve(ctx context.Context, id session.Identity, ev live.Event[models.Task]) (live.Event[models.Task], error) {
	if ev.Type == live.Deleted {
		return ev, nil
	}

	task, err := s.server.GetTask(ctx, ev.New.ID)
	switch {
	case err == nil:
		if !view.CanSee(task, id.Profile) {
			return live.DeletedEvent[models.Task](tasksTable, task.ID, ev.ArrivedAt), nil
		}
		ev.New = task
		return ev, nil
	case errors.Is(err, adapter.ErrNotFound):
		return live.DeletedEvent[models.Task](tasksTable, ev.New.ID, ev.ArrivedAt), nil
	case ctx.Err() != nil:
		return ev, err
	}

	ev.New = keepJoins(ev.New, s.current)
	return ev, nil
}

// keepJoins copies the projections of the listed row into a raw row image
// when the referenced ids did not change.
func keepJoins(task models.Task, current *live.Collection[models.Task]) models.Task {
	if current == nil {
		return task
	}
	prev, ok := current.Get(task.ID)
	if !ok {
		return task
	}
	if task.Company == nil && sameRef(task.CompanyID, prev.CompanyID) {
		task.Company = prev.Company
	}
	if task.Assignee == nil && sameRef(task.AssigneeID, prev.AssigneeID) {
		task.Assignee = prev.Assignee
	}
	return task
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
