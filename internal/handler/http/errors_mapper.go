// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-desk/internal/devbackend"
	"github.com/MKhiriev/go-task-desk/internal/utils"
)

var errorStatusMap = map[error]int{
	devbackend.ErrInvalidInput:    http.StatusBadRequest,
	devbackend.ErrInvalidToken:    http.StatusUnauthorized,
	devbackend.ErrTaskNotFound:    http.StatusNotFound,
	devbackend.ErrProfileNotFound: http.StatusNotFound,
	ErrMissingIDFilter:            http.StatusBadRequest,
	ErrInvalidAPIKey:              http.StatusUnauthorized,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// restError is the error body of the REST resources.
type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeRESTError answers err with its mapped status. A single-object request
// that matches no row answers 406 like PostgREST does.
func writeRESTError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	code := http.StatusText(status)
	if status == http.StatusNotFound && wantsObject(r) {
		status = http.StatusNotAcceptable
		code = "PGRST116"
	}
	utils.WriteJSON(w, restError{Code: code, Message: err.Error()}, status)
}

// authError is the error body of the identity endpoints.
type authError struct {
	Error            string `json:"error"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}

func writeAuthError(w http.ResponseWriter, err error) {
	body := authError{Error: "invalid_request", ErrorCode: "validation_failed", ErrorDescription: err.Error()}
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, devbackend.ErrInvalidCredentials):
		body.Error, body.ErrorCode = "invalid_grant", "invalid_credentials"
	case errors.Is(err, devbackend.ErrInvalidRefreshToken):
		body.Error, body.ErrorCode = "invalid_grant", "refresh_token_not_found"
	case errors.Is(err, devbackend.ErrEmailTaken):
		body.ErrorCode = "user_already_exists"
	case errors.Is(err, devbackend.ErrInvalidInput):
	default:
		status = http.StatusInternalServerError
		body.Error, body.ErrorCode = "server_error", "unexpected_failure"
	}

	utils.WriteJSON(w, body, status)
}
