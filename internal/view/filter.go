// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"slices"
	"strings"

	"github.com/MKhiriev/go-task-desk/models"
)

// TaskFilter selects tasks. Zero fields match everything.
type TaskFilter struct {
	// AssigneeID matches the assignee; Unassigned selects tasks without one.
	AssigneeID string
	Statuses   []models.TaskStatus
	Priority   models.Priority
	CompanyID  string

	// Query is matched case-insensitively against title, description,
	// company name and tags.
	Query string
}

// Unassigned is the AssigneeID filter value for tasks without an assignee.
const Unassigned = "-"

// IsZero reports whether the filter matches every task.
func (f TaskFilter) IsZero() bool {
	return f.AssigneeID == "" && len(f.Statuses) == 0 && f.Priority == "" && f.CompanyID == "" && strings.TrimSpace(f.Query) == ""
}

// Match reports whether t passes the filter.
func (f TaskFilter) Match(t models.Task) bool {
	switch f.AssigneeID {
	case "":
	case Unassigned:
		if t.AssigneeID != nil {
			return false
		}
	default:
		if !t.IsAssignedTo(f.AssigneeID) {
			return false
		}
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, t.Status) {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.CompanyID != "" && (t.CompanyID == nil || *t.CompanyID != f.CompanyID) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !matchesQuery(t, q) {
		return false
	}
	return true
}

func matchesQuery(t models.Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.CompanyName()), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filter returns the tasks matching f in input order.
func Filter(tasks []models.Task, f TaskFilter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// CanSee reports whether a user with profile follows t: admins, partners and
// managers see every task, staff only the ones assigned to or created by them.
func CanSee(t models.Task, profile models.Profile) bool {
	if profile.Role.SeesAll() {
		return true
	}
	return t.IsAssignedTo(profile.ID) || t.IsCreatedBy(profile.ID)
}

// Visible returns the tasks profile may see.
func Visible(tasks []models.Task, profile models.Profile) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if CanSee(t, profile) {
			out = append(out, t)
		}
	}
	return out
}

// Mine returns the tasks assigned to userID.
func Mine(tasks []models.Task, userID string) []models.Task {
	return Filter(tasks, TaskFilter{AssigneeID: userID})
}
