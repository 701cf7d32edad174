// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import "errors"

var (
	ErrNoToken           = errors.New("realtime: access token is required")
	ErrJoinRejected      = errors.New("realtime: join rejected by server")
	ErrJoinTimeout       = errors.New("realtime: join was not acknowledged in time")
	ErrChannelClosed     = errors.New("realtime: channel closed")
	ErrServerClosed      = errors.New("realtime: server closed the channel")
	ErrMalformedMessage  = errors.New("realtime: malformed message")
	ErrUnknownChangeType = errors.New("realtime: unknown change type")
)
