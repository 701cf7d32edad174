// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-task-desk/internal/app"
	"github.com/MKhiriev/go-task-desk/internal/utils"
)

const acceptObject = "application/vnd.pgrst.object+json"

// eqFilter returns the value of a column=eq.<value> query filter.
func eqFilter(r *http.Request, column string) (string, bool) {
	raw := r.URL.Query().Get(column)
	value, ok := strings.CutPrefix(raw, "eq.")
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// wantsObject reports whether the client asked for a single object instead
// of an array.
func wantsObject(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), acceptObject)
}

// wantsRepresentation reports whether a write should answer with the
// stored rows.
func wantsRepresentation(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Prefer"), "return=representation")
}

// writeRows answers with rows as an array, or as a single object when the
// client asked for one. An object request must match exactly one row.
func writeRows[T any](w http.ResponseWriter, r *http.Request, rows []T, status int) {
	if !wantsObject(r) {
		utils.WriteJSON(w, rows, status)
		return
	}
	if len(rows) != 1 {
		utils.WriteJSON(w, restError{
			Code:    "PGRST116",
			Message: app.MsgSingleObjectExpected,
		}, http.StatusNotAcceptable)
		return
	}
	utils.WriteJSON(w, rows[0], status)
}
