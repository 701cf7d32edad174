// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-desk/internal/service"
)

// networkFailureMarkers are substrings of transport errors that mean the
// backend could not be reached at all.
var networkFailureMarkers = []string{
	"connection refused",
	"connection reset",
	"dial tcp",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"context deadline exceeded",
}

// humanizeError turns err into a line for the status bar.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrBackendUnavailable):
		return "No network or the server is unavailable"
	case errors.Is(err, service.ErrSessionExpired):
		return "Session expired, sign in again"
	case errors.Is(err, service.ErrNotAllowed):
		return "You are not allowed to change this task"
	}

	s := strings.ToLower(err.Error())
	for _, marker := range networkFailureMarkers {
		if strings.Contains(s, marker) {
			return "No network or the server is unavailable"
		}
	}

	return err.Error()
}
