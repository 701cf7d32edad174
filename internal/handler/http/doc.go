// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the development backend.
//
// It exposes the identity endpoints (/auth/v1), the task and profile REST
// resources (/rest/v1) in the PostgREST dialect the client adapter speaks,
// and the realtime websocket (/realtime/v1/websocket). Cross-cutting
// concerns such as the project API key, bearer authentication, request
// tracing, access logging and response compression are handled here before
// requests reach the in-memory backend.
package http
