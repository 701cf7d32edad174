// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/service"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/models"
)

var ErrUserQuit = errors.New("user quit")

// TUI runs the terminal screens of the client: the sign-in flow and the
// live dashboard.
type TUI struct {
	auth          service.ClientAuthService
	tasks         service.ClientTaskService
	notifications service.ClientNotificationService
	buildInfo     models.AppBuildInfo
	logger        *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return newTUI(services.AuthService, services.TaskService, services.NotificationService, buildInfo, log)
}

func newTUI(
	auth service.ClientAuthService,
	tasks service.ClientTaskService,
	notifications service.ClientNotificationService,
	buildInfo models.AppBuildInfo,
	log *logger.Logger,
) *TUI {
	if log == nil {
		log = logger.Nop()
	}
	return &TUI{
		auth:          auth,
		tasks:         tasks,
		notifications: notifications,
		buildInfo:     buildInfo,
		logger:        log,
	}
}

// LoginFlow shows the sign-in and sign-up screens until the user is signed
// in. It returns ErrUserQuit when the user leaves instead.
func (t *TUI) LoginFlow(ctx context.Context) (session.Identity, error) {
	root := newRootModel(map[string]tea.Model{
		pageMenu:   newMenuModel(),
		pageSignIn: newLoginModel(ctx, t.auth, false),
		pageSignUp: newLoginModel(ctx, t.auth, true),
		pageAbout:  newAboutModel(t.buildInfo),
	}, pageMenu)

	finalModel, err := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if err != nil {
		return session.Identity{}, err
	}

	result, ok := finalModel.(rootModel)
	if !ok {
		return session.Identity{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return session.Identity{}, ErrUserQuit
	}
	return result.identity, nil
}

// Dashboard runs the live dashboard until the user quits or signs out. It
// reports whether the user signed out.
func (t *TUI) Dashboard(ctx context.Context) (logout bool, err error) {
	model := newDashboardModel(ctx, t.auth, t.tasks, t.notifications, t.buildInfo, t.logger)
	defer model.unsubscribe()

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(dashboardModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
