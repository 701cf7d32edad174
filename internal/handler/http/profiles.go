// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-desk/internal/devbackend"
	"github.com/MKhiriev/go-task-desk/models"
)

// getProfile serves GET /rest/v1/profiles?id=eq.<id>. Every signed-in user
// may read every profile.
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := eqFilter(r, "id")
	if !ok {
		writeRESTError(w, r, ErrMissingIDFilter)
		return
	}

	profile, err := h.backend.Profile(id)
	switch {
	case errors.Is(err, devbackend.ErrProfileNotFound):
		writeRows(w, r, []models.Profile{}, http.StatusOK)
	case err != nil:
		writeRESTError(w, r, err)
	default:
		writeRows(w, r, []models.Profile{profile}, http.StatusOK)
	}
}
