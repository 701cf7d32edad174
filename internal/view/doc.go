// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package view derives dashboard figures and task lists from a collection
// snapshot. Every function is pure: the same input always yields the same
// output and the input slice is never modified.
package view
