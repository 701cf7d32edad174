// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-desk/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: go-task-desk\n")
	b.WriteString("Version: ")
	b.WriteString(valueOrNA(info.BuildVersion()))
	b.WriteString("\n")
	b.WriteString("Date: ")
	b.WriteString(valueOrNA(info.BuildDate()))
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(valueOrNA(info.BuildCommit()))

	return renderPage("ABOUT", b.String(), "esc: back")
}

// aboutModel is the build info page of the sign-in flow.
type aboutModel struct {
	info models.AppBuildInfo
}

func newAboutModel(info models.AppBuildInfo) *aboutModel {
	return &aboutModel{info: info}
}

func (m *aboutModel) Init() tea.Cmd { return nil }

func (m *aboutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
	}
	return m, nil
}

func (m *aboutModel) View() string {
	return renderBuildInfoWindow(m.info)
}
