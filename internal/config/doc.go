// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the task desk binaries.
//
// Configuration is assembled from multiple sources; earlier sources win and
// later ones only fill fields that are still unset:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetClientConfig] for the TUI client and
// [GetBackendConfig] for the development backend.
package config
