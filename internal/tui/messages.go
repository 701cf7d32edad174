// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	"github.com/MKhiriev/go-task-desk/internal/session"
)

// NavigateTo switches the page shown by rootModel.
type NavigateTo struct {
	Page string
}

type authResultMsg struct {
	identity session.Identity
	err      error
}

type tasksChangedMsg struct{}

type notificationsChangedMsg struct{}

type actionDoneMsg struct {
	action string
	err    error
}

type signedOutMsg struct {
	err error
}

type clockMsg time.Time

type clearStatusMsg struct{}
