// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/service"
	"github.com/MKhiriev/go-task-desk/internal/tui"
)

// App is the client process: services running in the background and the
// terminal UI in the foreground.
type App struct {
	runtime runtime
	auth    restorer
	ui      screens
	logger  *logger.Logger
}

// NewApp builds the client application from already constructed services
// and UI.
func NewApp(services *service.ClientServices, ui *tui.TUI, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("client services are required")
	}
	if ui == nil {
		return nil, errors.New("tui is required")
	}
	return newApp(services, services.AuthService, ui, log), nil
}

func newApp(rt runtime, auth restorer, ui screens, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		runtime: rt,
		auth:    auth,
		ui:      ui,
		logger:  log.WithComponent("app"),
	}
}

// Run starts the background services and drives the UI until the user
// quits. Signing out returns to the sign-in flow.
func (a *App) Run(ctx context.Context) error {
	a.runtime.Start(ctx)
	defer a.runtime.Close()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		identity, restored, err := a.auth.Restore(ctx)
		if err != nil {
			a.logger.Warn().Err(err).Str("func", "App.Run").Msg("restore session failed, asking to sign in")
		}

		if !restored {
			identity, err = a.ui.LoginFlow(ctx)
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("login flow: %w", err)
			}
		}

		a.logger.Info().
			Str("func", "App.Run").
			Str("user_id", identity.UserID()).
			Bool("restored", restored).
			Msg("signed in")

		logout, err := a.ui.Dashboard(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		if !logout {
			return nil
		}

		a.logger.Info().Str("func", "App.Run").Msg("signed out")
	}
}
