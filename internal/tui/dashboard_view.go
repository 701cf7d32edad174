// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-task-desk/internal/subscription"
	"github.com/MKhiriev/go-task-desk/internal/view"
	"github.com/MKhiriev/go-task-desk/models"
)

const (
	throughputDays = 7
	topWorkload    = 5
	upcomingCount  = 5
	maxBarWidth    = 20
	panelRows      = 12
)

func (m dashboardModel) View() string {
	if m.showAbout {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	status := m.tasks.Status()
	switch {
	case status.Err != nil:
		b.WriteString(errorStyle.Render("Could not load tasks: " + humanizeError(status.Err)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("retrying..."))
		b.WriteString("\n")
	case status.Loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading tasks...\n")
	default:
		tasks := m.scopedTasks()
		b.WriteString(renderCards(view.Count(tasks, m.now)))
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render(renderThroughput(view.DailyCompleted(tasks, m.now, throughputDays, nil))),
			panelStyle.Render(renderWorkload(view.Workload(tasks, topWorkload))),
			panelStyle.Render(renderUpcoming(view.Upcoming(tasks, upcomingCount), m.now)),
		))
		b.WriteString("\n")
		if m.panelOpen {
			b.WriteString(m.renderNotifications())
		} else {
			b.WriteString(m.renderTaskList())
		}
	}

	if m.searching || m.search.Value() != "" {
		b.WriteString("\nSearch: ")
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return appStyle.Render(b.String())
}

// scopedTasks is the dashboard scope: every visible task, or only the
// user's own in the personal view.
func (m dashboardModel) scopedTasks() []models.Task {
	tasks := m.tasks.Tasks()
	if m.mineOnly {
		return view.Mine(tasks, m.auth.Current().UserID())
	}
	return tasks
}

func (m dashboardModel) renderHeader() string {
	name := m.auth.Current().Profile.DisplayName()

	scope := "All tasks"
	if m.mineOnly {
		scope = "My tasks"
	}

	unread := m.notifications.UnreadCount()
	bell := "notifications: 0"
	if unread > 0 {
		bell = unreadStyle.Render(fmt.Sprintf("notifications: %d unread", unread))
	}

	return fmt.Sprintf("%s, %s  │ %s │ %s │ %s",
		titleStyle.Render(view.Greeting(m.now)),
		name,
		scope,
		connectionBadge(m.tasks.Status()),
		bell,
	)
}

func connectionBadge(s subscription.Status) string {
	switch {
	case s.Stale:
		return staleStyle.Render("● reconnecting")
	case s.State == subscription.Live:
		return liveStyle.Render("● live")
	default:
		return helpStyle.Render("● " + s.State.String())
	}
}

func renderCards(c view.Counts) string {
	cards := []string{
		cardStyle.Render(fmt.Sprintf("Total\n%d", c.Total)),
		cardStyle.Render(fmt.Sprintf("Pending\n%d", c.Pending)),
		cardStyle.Render(fmt.Sprintf("In review\n%d", c.InReview)),
		cardStyle.Render(fmt.Sprintf("Completed\n%d", c.Completed)),
		cardStyle.Render(overdueStyle.Render(fmt.Sprintf("Overdue\n%d", c.Overdue))),
		cardStyle.Render(fmt.Sprintf("Done\n%d%%", c.CompletionRate)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderThroughput(days []view.DayCount) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Count)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Completed, last 7 days"))
	for _, d := range days {
		width := 0
		if peak > 0 {
			width = d.Count * maxBarWidth / peak
		}
		b.WriteString(fmt.Sprintf("\n%s %s %d", d.Label(), strings.Repeat("█", width), d.Count))
	}
	return b.String()
}

func renderWorkload(buckets []view.Bucket) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Workload"))
	if len(buckets) == 0 {
		b.WriteString("\n-")
	}
	for _, bucket := range buckets {
		b.WriteString(fmt.Sprintf("\n%s %d", padRight(bucket.Name, 18), bucket.Count))
	}
	return b.String()
}

func renderUpcoming(tasks []models.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upcoming"))
	if len(tasks) == 0 {
		b.WriteString("\n-")
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%s %s", dateOrDash(t.DueDate), fitText(t.Title, 24))
		if view.IsOverdue(t, now) {
			line = overdueStyle.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

func (m dashboardModel) renderTaskList() string {
	tasks := m.visibleTasks()

	filter := "all"
	if m.statusFilter > 0 {
		filter = string(models.TaskStatuses[m.statusFilter-1])
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  sort: %s │ status: %s", m.sortKey, filter)))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString("No tasks\n")
		return b.String()
	}

	for i, t := range tasks {
		check := "[ ]"
		if t.Status == models.StatusCompleted {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s %s %s %s %s %3d%%",
			check,
			padRight(t.Title, 32),
			padRight(t.CompanyName(), 18),
			padRight(t.AssigneeName(), 16),
			padRight(dateOrDash(t.DueDate), 10),
			padRight(string(t.Priority), 6),
			t.Progress,
		)

		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case t.Status.IsTerminal():
			line = doneStyle.Render(line)
		case view.IsOverdue(t, m.now):
			line = overdueStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashboardModel) renderNotifications() string {
	list := m.notifications.Notifications()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Notifications (%d unread)", view.UnreadCount(list))))
	b.WriteString("\n")
	if len(list) == 0 {
		b.WriteString("No notifications\n")
		return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
	}

	start := 0
	if m.panelCursor >= panelRows {
		start = m.panelCursor - panelRows + 1
	}
	end := min(len(list), start+panelRows)

	for i := start; i < end; i++ {
		n := list[i]
		marker := " "
		if !n.Read {
			marker = "•"
		}
		line := fmt.Sprintf("%s %s  %s", marker, n.Timestamp.Local().Format("Jan 02 15:04"), n.Message)
		switch {
		case i == m.panelCursor:
			line = cursorStyle.Render(line)
		case !n.Read:
			line = unreadStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m dashboardModel) helpLine() string {
	if m.searching {
		return "enter: apply │ esc: clear"
	}
	if m.panelOpen {
		return "↑/↓: move │ enter: mark read │ r: mark all read │ x: clear │ esc: close"
	}
	return "↑/↓: move │ space: done/undo │ /: search │ f: status │ m: mine/all │ s: sort │ y: copy │ n: notifications │ ?: about │ L: sign out │ q: quit"
}
