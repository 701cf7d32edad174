// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-desk/internal/utils"
)

// getServerVersion serves GET /version with the build version as plain text.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.buildInfo.BuildVersion()
	if version == "" {
		version = "N/A"
	}

	utils.WriteText(w, version, http.StatusOK)
}
