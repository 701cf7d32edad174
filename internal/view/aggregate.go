// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"sort"
	"time"

	"github.com/MKhiriev/go-task-desk/models"
)

// DayCount is the number of tasks completed on one local calendar day.
type DayCount struct {
	// Day is local midnight of the day.
	Day   time.Time
	Count int
}

// Label returns the short weekday name, e.g. "Mon".
func (d DayCount) Label() string {
	return d.Day.Format("Mon")
}

// DailyCompleted counts completed tasks per local calendar day over the
// trailing window of days ending with the day of now, oldest first.
//
// A task is bucketed by CompletedAt, or by UpdatedAt when the completion
// timestamp is missing. loc defaults to time.Local.
func DailyCompleted(tasks []models.Task, now time.Time, days int, loc *time.Location) []DayCount {
	if days <= 0 {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	today := startOfDay(now.In(loc))
	first := today.AddDate(0, 0, -(days - 1))

	out := make([]DayCount, days)
	for i := range out {
		out[i].Day = first.AddDate(0, 0, i)
	}

	for _, t := range tasks {
		if t.Status != models.StatusCompleted {
			continue
		}
		at := t.UpdatedAt
		if t.CompletedAt != nil {
			at = *t.CompletedAt
		}
		if at.IsZero() {
			continue
		}
		day := startOfDay(at.In(loc))
		if day.Before(first) || day.After(today) {
			continue
		}
		for i := range out {
			if out[i].Day.Equal(day) {
				out[i].Count++
				break
			}
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Bucket is one group of a group-by aggregate.
type Bucket struct {
	Name  string
	Count int
}

// Workload counts tasks per assignee name ("Unassigned" when none), ordered
// by descending count with ties in first-encountered order, truncated to
// topN (all groups when topN <= 0).
func Workload(tasks []models.Task, topN int) []Bucket {
	index := make(map[string]int)
	var out []Bucket
	for _, t := range tasks {
		name := t.AssigneeName()
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Bucket{Name: name})
		}
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Upcoming returns up to n tasks that are not in a terminal status, by due
// date ascending with undated tasks last.
func Upcoming(tasks []models.Task, n int) []models.Task {
	open := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Status.IsTerminal() {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool { return dueBefore(open[i], open[j]) })
	if n >= 0 && len(open) > n {
		open = open[:n]
	}
	return open
}

func dueBefore(a, b models.Task) bool {
	switch {
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}
