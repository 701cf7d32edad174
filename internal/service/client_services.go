// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-task-desk/internal/adapter"
	"github.com/MKhiriev/go-task-desk/internal/config"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/internal/store"
	"github.com/MKhiriev/go-task-desk/internal/subscription"
	"github.com/MKhiriev/go-task-desk/internal/workers"
)

// ClientServices groups everything the terminal client needs. It is built
// once at startup and closed at shutdown.
type ClientServices struct {
	AuthService         ClientAuthService
	TaskService         ClientTaskService
	NotificationService ClientNotificationService

	provider *session.Provider
	workers  *workers.Workers

	unsubscribe func()
	closeOnce   sync.Once
}

// NewClientServices wires the session provider to both live lists. Session
// transitions are forwarded to the lists in subscription order, tasks first.
func NewClientServices(
	serverAdapter adapter.ServerAdapter,
	feed realtime.Feed,
	sessions store.SessionRepository,
	notifications store.NotificationRepository,
	cfg config.ClientConfig,
	log *logger.Logger,
) *ClientServices {
	if log == nil {
		log = logger.Nop()
	}

	provider := session.NewProvider(serverAdapter, sessions, log.WithComponent("session"))
	settings := subscription.Settings{
		RetryBase: cfg.Realtime.ReconnectBase,
		RetryMax:  cfg.Realtime.ReconnectMax,
	}

	tasks := NewTaskBoard(serverAdapter, feed, provider, settings, log)
	feedSvc := NewNotificationFeed(notifications, feed, provider, settings, log)

	s := &ClientServices{
		AuthService:         NewClientAuthService(provider, log.WithComponent("auth")),
		TaskService:         tasks,
		NotificationService: feedSvc,
		provider:            provider,
	}
	s.workers = workers.NewWorkers(
		tasks.Manager(),
		feedSvc.Manager(),
		session.NewRefreshJob(provider, cfg.Workers.RefreshInterval, cfg.Workers.RefreshSkew, log),
	)

	unsubTasks := provider.Subscribe(tasks.Manager().HandleSession)
	unsubNotifications := provider.Subscribe(feedSvc.Manager().HandleSession)
	s.unsubscribe = func() {
		unsubTasks()
		unsubNotifications()
	}

	return s
}

// Provider exposes the session provider.
func (s *ClientServices) Provider() *session.Provider {
	return s.provider
}

// Start launches both list managers and the token refresh job.
func (s *ClientServices) Start(ctx context.Context) {
	s.workers.Start(ctx)
}

// Close stops the background work. The session stays persisted.
func (s *ClientServices) Close() {
	s.closeOnce.Do(func() {
		s.unsubscribe()
		s.workers.Stop()
	})
}
