// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid login credentials")
	ErrEmailTaken          = errors.New("user already registered")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidToken        = errors.New("invalid access token")
	ErrInvalidInput        = errors.New("invalid input")
	ErrTaskNotFound        = errors.New("task not found")
	ErrProfileNotFound     = errors.New("profile not found")
)
