// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package devbackend is an in-memory stand-in for the hosted backend used
// for local runs and end-to-end tests.
//
// [Backend] keeps accounts, profiles, companies and tasks in memory, issues
// HS256 access tokens with single-use refresh tokens and applies row-level
// visibility: admins, partners and managers see every task, staff only the
// ones assigned to or created by them. Every task write is published to the
// [Hub], which fans the change out to joined realtime channels whose
// viewer may see the row.
package devbackend
