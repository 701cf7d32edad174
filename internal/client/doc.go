// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires terminal UI flows, client services and the live task and
// notification lists into a single process lifecycle: restore or sign in,
// run the dashboard, and go back to the sign-in flow after signing out.
package client
