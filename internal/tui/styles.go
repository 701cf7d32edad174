// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	unreadStyle  = lipgloss.NewStyle().Bold(true)
	liveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	staleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)
