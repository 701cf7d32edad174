// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler builds the transport handlers of the development backend.
package handler

import (
	"github.com/MKhiriev/go-task-desk/internal/config"
	"github.com/MKhiriev/go-task-desk/internal/devbackend"
	"github.com/MKhiriev/go-task-desk/internal/handler/http"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(backend *devbackend.Backend, cfg config.BackendConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(backend, cfg, buildInfo, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
