// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-desk/internal/adapter"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return ErrInvalidDataProvided
	case errors.Is(err, adapter.ErrUnauthorized):
		return ErrSessionExpired
	case errors.Is(err, adapter.ErrForbidden):
		return ErrNotAllowed
	case errors.Is(err, adapter.ErrNotFound):
		return ErrTaskNotFound
	case errors.Is(err, adapter.ErrConflict):
		return ErrConflict
	case errors.Is(err, adapter.ErrBadGateway), errors.Is(err, adapter.ErrInternalServerError):
		return ErrBackendUnavailable
	}

	return err
}

// mapAuthError translates identity provider errors. Credentials problems
// are reported with the backend's error code in the body.
func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()

	switch {
	case errors.Is(err, session.ErrEmptyCredentials):
		return err
	case errors.Is(err, session.ErrSessionExpired):
		return ErrSessionExpired
	case errors.Is(err, session.ErrNotSignedIn):
		return ErrNotSignedIn
	case errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrBadRequest) && strings.Contains(msg, "invalid_credentials"):
		return ErrWrongCredentials
	case errors.Is(err, adapter.ErrConflict),
		errors.Is(err, adapter.ErrBadRequest) && strings.Contains(msg, "user_already_exists"):
		return ErrAccountExists
	}

	return mapAdapterError(err)
}

// mapStoreError translates local repository errors.
func mapStoreError(err error) error {
	if errors.Is(err, store.ErrNotificationNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
