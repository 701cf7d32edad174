// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the development backend's HTTP transport.
//
// It owns the server lifecycle: startup, waiting for a stop signal or a
// cancelled context, and graceful shutdown so open realtime sockets and
// in-flight requests can finish.
package server
