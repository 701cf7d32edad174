// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"sort"
	"strings"

	"github.com/MKhiriev/go-task-desk/models"
)

// SortKey selects a task ordering.
type SortKey int

const (
	ByDueDate SortKey = iota
	ByPriority
	ByStatus
	ByTitle
	ByUpdated
)

var sortKeyNames = []string{"due date", "priority", "status", "title", "recently updated"}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return "unknown"
	}
	return sortKeyNames[k]
}

// Next cycles through the sort keys.
func (k SortKey) Next() SortKey {
	return (k + 1) % SortKey(len(sortKeyNames))
}

// SortTasks returns a sorted copy of tasks. The sort is stable, so tasks
// comparing equal keep their input order.
func SortTasks(tasks []models.Task, key SortKey) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	var less func(a, b models.Task) bool
	switch key {
	case ByPriority:
		less = func(a, b models.Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case ByStatus:
		less = func(a, b models.Task) bool { return statusRank(a.Status) < statusRank(b.Status) }
	case ByTitle:
		less = func(a, b models.Task) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case ByUpdated:
		less = func(a, b models.Task) bool { return a.UpdatedAt.After(b.UpdatedAt) }
	default:
		less = dueBefore
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// TaskOrder is the default ordering of the live task list: due date
// ascending, undated last.
func TaskOrder(a, b models.Task) bool {
	return dueBefore(a, b)
}

func statusRank(s models.TaskStatus) int {
	for i, known := range models.TaskStatuses {
		if s == known {
			return i
		}
	}
	return len(models.TaskStatuses)
}
