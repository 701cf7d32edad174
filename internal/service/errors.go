// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-task-desk/internal/validators"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong email or password")
	ErrAccountExists       = errors.New("an account with this email already exists")
	ErrSessionExpired      = errors.New("session expired, sign in again")
	ErrNotSignedIn         = errors.New("not signed in")
	ErrNotAllowed          = errors.New("not allowed to change this record")
	ErrConflict            = errors.New("record was changed concurrently")
	ErrBackendUnavailable  = errors.New("backend unavailable")

	ErrTaskNotFound       = errors.New("task not found")
	ErrEmptyPatch         = errors.New("nothing to update")
	ErrEmptyTitle         = validators.ErrEmptyTitle
	ErrInvalidStatus      = validators.ErrInvalidStatus
	ErrInvalidPriority    = validators.ErrInvalidPriority
	ErrProgressOutOfRange = validators.ErrProgressOutOfRange

	ErrNotificationNotFound = errors.New("notification not found")
)
