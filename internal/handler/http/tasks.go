// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-task-desk/internal/app"
	"github.com/MKhiriev/go-task-desk/internal/devbackend"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/models"
)

// listTasks serves GET /rest/v1/tasks, optionally narrowed to one row with
// id=eq.<id>. Rows always carry the company and assignee joins and are
// ordered by due date, undated last.
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(r)
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	id, single := eqFilter(r, "id")
	if !single {
		writeRows(w, r, h.backend.ListTasks(viewer), http.StatusOK)
		return
	}

	task, err := h.backend.GetTask(viewer, id)
	if err != nil {
		if wantsObject(r) {
			writeRESTError(w, r, err)
			return
		}
		writeRows(w, r, []models.Task{}, http.StatusOK)
		return
	}
	writeRows(w, r, []models.Task{task}, http.StatusOK)
}

// createTask serves POST /rest/v1/tasks.
func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	viewer, ok := viewerFromRequest(r)
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var draft models.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Str("func", "*Handler.createTask").Msg("Invalid JSON was passed")
		writeRESTError(w, r, fmt.Errorf("%w: %s", devbackend.ErrInvalidInput, app.MsgInvalidJSON))
		return
	}

	task, err := h.backend.CreateTask(viewer, draft)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTask").Msg("error creating task")
		writeRESTError(w, r, err)
		return
	}

	if !wantsRepresentation(r) {
		w.WriteHeader(http.StatusCreated)
		return
	}
	writeRows(w, r, []models.Task{task}, http.StatusCreated)
}

// updateTask serves PATCH /rest/v1/tasks?id=eq.<id>.
func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	viewer, ok := viewerFromRequest(r)
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	id, single := eqFilter(r, "id")
	if !single {
		writeRESTError(w, r, ErrMissingIDFilter)
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Str("func", "*Handler.updateTask").Msg("Invalid JSON was passed")
		writeRESTError(w, r, fmt.Errorf("%w: %s", devbackend.ErrInvalidInput, app.MsgInvalidJSON))
		return
	}

	task, err := h.backend.UpdateTask(viewer, id, fields)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTask").Str("task_id", id).Msg("error updating task")
		writeRESTError(w, r, err)
		return
	}

	if !wantsRepresentation(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeRows(w, r, []models.Task{task}, http.StatusOK)
}

// deleteTask serves DELETE /rest/v1/tasks?id=eq.<id>.
func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(r)
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	id, single := eqFilter(r, "id")
	if !single {
		writeRESTError(w, r, ErrMissingIDFilter)
		return
	}

	if err := h.backend.DeleteTask(viewer, id); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteTask").Str("task_id", id).Msg("error deleting task")
		writeRESTError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
