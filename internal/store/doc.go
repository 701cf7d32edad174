// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the client's local persistence: the signed-in session and
// the notification history, kept in SQLite. Queries are built with squirrel
// using question-mark placeholders; the schema lives in the migrations
// package.
package store
