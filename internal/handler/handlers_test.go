// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-desk/internal/config"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/models"
)

// NewHandler only stores the backend pointer, so nil is safe here.
func TestNewHandlers_HTTP(t *testing.T) {
	cfg := config.BackendConfig{HTTPAddress: ":8080", APIKey: "anon"}

	h, err := NewHandlers(nil, cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(nil, config.BackendConfig{}, models.NewAppBuildInfo("", "", ""), logger.Nop())

	assert.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}
