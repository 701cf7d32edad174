// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// TaskStatus is the workflow state of a compliance task.
type TaskStatus string

const (
	// StatusPending marks a task that has not been started.
	StatusPending TaskStatus = "pending"

	// StatusInProgress marks a task somebody is actively working on.
	StatusInProgress TaskStatus = "in_progress"

	// StatusReview marks a task waiting for a partner or manager sign-off.
	StatusReview TaskStatus = "review"

	// StatusCompleted marks a finished task.
	StatusCompleted TaskStatus = "completed"

	// StatusCancelled marks a task that will not be done.
	StatusCancelled TaskStatus = "cancelled"
)

// TaskStatuses lists all known statuses in workflow order.
var TaskStatuses = []TaskStatus{
	StatusPending,
	StatusInProgress,
	StatusReview,
	StatusCompleted,
	StatusCancelled,
}

// IsTerminal reports whether no further work is expected on a task in this
// status. Terminal tasks are never overdue.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsOpen reports whether the status counts as pending work on dashboards
// (pending or in progress).
func (s TaskStatus) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority is the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities from most to least urgent (high = 0). Unknown
// values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// CompanyRef is the joined company projection returned together with a task.
type CompanyRef struct {
	Name string `json:"name"`
}

// AssigneeRef is the joined profile projection of the task assignee.
type AssigneeRef struct {
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// Task is a unit of compliance work tied to a client company.
//
// Task is the entity synchronised by the live task board. ID is stable and
// unique; every other field may change through updates.
type Task struct {
	// ID is the server-assigned unique identifier (UUID).
	ID string `json:"id"`

	// Title is the short human-readable name of the task.
	Title string `json:"title"`

	// Description is an optional longer explanation.
	Description *string `json:"description"`

	// CompanyID references the client company the task belongs to.
	CompanyID *string `json:"company_id"`

	// AssigneeID references the profile the task is assigned to.
	AssigneeID *string `json:"assignee_id"`

	// CreatedBy references the profile that created the task.
	CreatedBy *string `json:"created_by"`

	// Status is the current workflow state.
	Status TaskStatus `json:"status"`

	// Priority is the urgency of the task.
	Priority Priority `json:"priority"`

	// DueDate is the statutory or internal deadline, if any.
	DueDate *time.Time `json:"due_date"`

	// Progress is the completion percentage, 0 to 100.
	Progress int `json:"progress"`

	// Tags are free-form labels.
	Tags []string `json:"tags"`

	// ParentTaskID references the parent task for sub-tasks.
	ParentTaskID *string `json:"parent_task_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt is set when the task enters the completed status and
	// cleared when it leaves it.
	CompletedAt *time.Time `json:"completed_at"`

	// Company is the joined company projection. It is absent from raw
	// change-feed row images and filled by re-resolving the row.
	Company *CompanyRef `json:"company,omitempty"`

	// Assignee is the joined assignee projection. Like Company it is only
	// present on rows fetched through the REST API.
	Assignee *AssigneeRef `json:"assignee,omitempty"`
}

// AssigneeName returns the display name of the assignee, or "Unassigned".
func (t Task) AssigneeName() string {
	if t.Assignee != nil && t.Assignee.FullName != "" {
		return t.Assignee.FullName
	}
	return "Unassigned"
}

// CompanyName returns the joined company name or an empty string.
func (t Task) CompanyName() string {
	if t.Company != nil {
		return t.Company.Name
	}
	return ""
}

// IsAssignedTo reports whether the task is assigned to userID.
func (t Task) IsAssignedTo(userID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// IsCreatedBy reports whether the task was created by userID.
func (t Task) IsCreatedBy(userID string) bool {
	return t.CreatedBy != nil && *t.CreatedBy == userID
}

// TaskDraft carries the fields of a task to be created.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	CompanyID   *string    `json:"company_id,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	CreatedBy   *string    `json:"created_by,omitempty"`
	Status      TaskStatus `json:"status,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Progress    int        `json:"progress"`
	Tags        []string   `json:"tags,omitempty"`
}

// TaskPatch is a partial update of a task. Only non-nil fields are applied.
//
// An AssigneeID pointing at an empty string un-assigns the task.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *Priority
	Progress    *int
	AssigneeID  *string
	DueDate     *time.Time
	Tags        []string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Progress == nil && p.AssigneeID == nil &&
		p.DueDate == nil && p.Tags == nil
}

// Fields returns the column/value map sent to the backend. Completion
// bookkeeping is added: updated_at is always stamped with now, completed_at
// is set when the status becomes completed and cleared for any other status.
func (p TaskPatch) Fields(now time.Time) map[string]any {
	fields := make(map[string]any, 8)
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Status != nil {
		fields["status"] = *p.Status
		if *p.Status == StatusCompleted {
			fields["completed_at"] = now.UTC()
		} else {
			fields["completed_at"] = nil
		}
	}
	if p.Priority != nil {
		fields["priority"] = *p.Priority
	}
	if p.Progress != nil {
		fields["progress"] = *p.Progress
	}
	if p.AssigneeID != nil {
		if *p.AssigneeID == "" {
			fields["assignee_id"] = nil
		} else {
			fields["assignee_id"] = *p.AssigneeID
		}
	}
	if p.DueDate != nil {
		fields["due_date"] = p.DueDate.UTC()
	}
	if p.Tags != nil {
		fields["tags"] = p.Tags
	}
	fields["updated_at"] = now.UTC()
	return fields
}

// MarshalJSON encodes the patch as the sparse field map produced by Fields
// stamped with the current time.
func (p TaskPatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields(time.Now()))
}

// Apply returns a copy of t with the patch applied locally, using the same
// completion bookkeeping as Fields. Joined projections are left untouched
// except that un-assigning clears Assignee.
func (p TaskPatch) Apply(t Task, now time.Time) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
		if *p.Status == StatusCompleted {
			at := now.UTC()
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.AssigneeID != nil {
		if *p.AssigneeID == "" {
			t.AssigneeID = nil
			t.Assignee = nil
		} else {
			id := *p.AssigneeID
			t.AssigneeID = &id
		}
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), p.Tags...)
	}
	t.UpdatedAt = now.UTC()
	return t
}
