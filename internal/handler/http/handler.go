// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-task-desk/internal/config"
	"github.com/MKhiriev/go-task-desk/internal/devbackend"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/models"
)

type Handler struct {
	backend   *devbackend.Backend
	apiKey    string
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(backend *devbackend.Backend, cfg config.BackendConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		backend:   backend,
		apiKey:    cfg.APIKey,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
