// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/service"
	"github.com/MKhiriev/go-task-desk/internal/view"
	"github.com/MKhiriev/go-task-desk/models"
)

const (
	statusTTL     = 3 * time.Second
	clockInterval = time.Minute
)

var copyToClipboard = clipboard.WriteAll

// dashboardModel is the main screen: headline figures, aggregates and the
// live task list, with the notification panel on top when opened.
type dashboardModel struct {
	ctx           context.Context
	auth          service.ClientAuthService
	tasks         service.ClientTaskService
	notifications service.ClientNotificationService
	buildInfo     models.AppBuildInfo
	logger        *logger.Logger

	tasksChanged         <-chan struct{}
	notificationsChanged <-chan struct{}
	unsubscribe          func()

	now     time.Time
	spinner spinner.Model

	// list state
	cursor       int
	mineOnly     bool
	statusFilter int // 0 = all, otherwise index into models.TaskStatuses + 1
	sortKey      view.SortKey
	search       textinput.Model
	searching    bool

	// notification panel state
	panelOpen   bool
	panelCursor int

	showAbout bool
	status    string
	errMsg    string
	logout    bool
}

func newDashboardModel(
	ctx context.Context,
	auth service.ClientAuthService,
	tasks service.ClientTaskService,
	notifications service.ClientNotificationService,
	buildInfo models.AppBuildInfo,
	log *logger.Logger,
) dashboardModel {
	if log == nil {
		log = logger.Nop()
	}

	search := textinput.New()
	search.Placeholder = "search title, company, tags"
	search.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	tasksCh, unsubTasks := tasks.Changes()
	notesCh, unsubNotes := notifications.Changes()

	return dashboardModel{
		ctx:                  ctx,
		auth:                 auth,
		tasks:                tasks,
		notifications:        notifications,
		buildInfo:            buildInfo,
		logger:               log,
		tasksChanged:         tasksCh,
		notificationsChanged: notesCh,
		unsubscribe: func() {
			unsubTasks()
			unsubNotes()
		},
		now:     time.Now(),
		spinner: sp,
		search:  search,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(
		waitFor(m.tasksChanged, tasksChangedMsg{}),
		waitFor(m.notificationsChanged, notificationsChangedMsg{}),
		m.spinner.Tick,
		tickClock(),
	)
}

// waitFor turns the next signal on ch into msg. Signals are coalesced by the
// sender, so one pending wait per channel is enough.
func waitFor(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return msg
	}
}

func tickClock() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksChangedMsg:
		m.clampCursor()
		return m, waitFor(m.tasksChanged, tasksChangedMsg{})
	case notificationsChangedMsg:
		m.clampPanelCursor()
		return m, waitFor(m.notificationsChanged, notificationsChangedMsg{})
	case clockMsg:
		m.now = time.Time(msg)
		return m, tickClock()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case actionDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("%s failed: %s", msg.action, humanizeError(msg.err))
			m.status = ""
			return m, nil
		}
		m.errMsg = ""
		m.status = msg.action + " done"
		return m, clearStatusLater()
	case signedOutMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("func", "dashboardModel.Update").Msg("sign out failed")
		}
		m.logout = true
		return m, tea.Quit
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.searching {
		switch {
		case key.Matches(msg, keys.enter), key.Matches(msg, keys.esc):
			m.searching = false
			m.search.Blur()
			if key.Matches(msg, keys.esc) {
				m.search.SetValue("")
			}
			m.clampCursor()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor = 0
		return m, cmd
	}

	if m.showAbout {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.about) {
			m.showAbout = false
		}
		return m, nil
	}

	if m.panelOpen {
		return m.updatePanelKeys(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.down):
		if m.cursor < len(m.visibleTasks())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.toggle):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.cmdToggle(task.ID)
	case key.Matches(msg, keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.filter):
		m.statusFilter = (m.statusFilter + 1) % (len(models.TaskStatuses) + 1)
		m.cursor = 0
	case key.Matches(msg, keys.mine):
		m.mineOnly = !m.mineOnly
		m.cursor = 0
	case key.Matches(msg, keys.sort):
		m.sortKey = m.sortKey.Next()
	case key.Matches(msg, keys.copy):
		task, ok := m.selectedTask()
		if !ok {
			m.status = "Nothing to copy"
			return m, clearStatusLater()
		}
		if err := copyToClipboard(task.Title); err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.status = "Copied: " + task.Title
		return m, clearStatusLater()
	case key.Matches(msg, keys.notifications):
		m.panelOpen = true
		m.panelCursor = 0
	case key.Matches(msg, keys.about):
		m.showAbout = true
	case key.Matches(msg, keys.logout):
		return m, m.cmdSignOut()
	}
	return m, nil
}

func (m dashboardModel) updatePanelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.notifications.Notifications()

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.notifications):
		m.panelOpen = false
	case key.Matches(msg, keys.up):
		if m.panelCursor > 0 {
			m.panelCursor--
		}
	case key.Matches(msg, keys.down):
		if m.panelCursor < len(list)-1 {
			m.panelCursor++
		}
	case key.Matches(msg, keys.enter):
		if m.panelCursor < len(list) && !list[m.panelCursor].Read {
			return m, m.cmdMarkRead(list[m.panelCursor].ID)
		}
	case key.Matches(msg, keys.readAll):
		return m, m.cmdMarkAllRead()
	case key.Matches(msg, keys.clear):
		m.panelCursor = 0
		return m, m.cmdClear()
	}
	return m, nil
}

// visibleTasks applies the scope, filter and sort selected by the user.
func (m dashboardModel) visibleTasks() []models.Task {
	tasks := m.tasks.Tasks()
	if m.mineOnly {
		tasks = view.Mine(tasks, m.auth.Current().UserID())
	}

	f := view.TaskFilter{Query: m.search.Value()}
	if m.statusFilter > 0 {
		f.Statuses = []models.TaskStatus{models.TaskStatuses[m.statusFilter-1]}
	}
	if !f.IsZero() {
		tasks = view.Filter(tasks, f)
	}
	return view.SortTasks(tasks, m.sortKey)
}

func (m dashboardModel) selectedTask() (models.Task, bool) {
	tasks := m.visibleTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *dashboardModel) clampCursor() {
	n := len(m.visibleTasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *dashboardModel) clampPanelCursor() {
	n := len(m.notifications.Notifications())
	if m.panelCursor >= n {
		m.panelCursor = n - 1
	}
	if m.panelCursor < 0 {
		m.panelCursor = 0
	}
}

func (m dashboardModel) cmdToggle(id string) tea.Cmd {
	ctx, tasks := m.ctx, m.tasks
	return func() tea.Msg {
		_, err := tasks.ToggleComplete(ctx, id)
		return actionDoneMsg{action: "Update", err: err}
	}
}

func (m dashboardModel) cmdMarkRead(id string) tea.Cmd {
	ctx, notes := m.ctx, m.notifications
	return func() tea.Msg {
		return actionDoneMsg{action: "Mark read", err: notes.MarkRead(ctx, id)}
	}
}

func (m dashboardModel) cmdMarkAllRead() tea.Cmd {
	ctx, notes := m.ctx, m.notifications
	return func() tea.Msg {
		return actionDoneMsg{action: "Mark all read", err: notes.MarkAllRead(ctx)}
	}
}

func (m dashboardModel) cmdClear() tea.Cmd {
	ctx, notes := m.ctx, m.notifications
	return func() tea.Msg {
		return actionDoneMsg{action: "Clear", err: notes.Clear(ctx)}
	}
}

func (m dashboardModel) cmdSignOut() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return signedOutMsg{err: auth.SignOut(ctx)}
	}
}
