// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle         = errors.New("task title is required")
	ErrInvalidStatus      = errors.New("unknown task status")
	ErrInvalidPriority    = errors.New("unknown task priority")
	ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")
	ErrEmptyID            = errors.New("task id is required")
)
