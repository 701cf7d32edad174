// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title string
	page  string
}

type menuModel struct {
	items []menuItem
	idx   int
}

func newMenuModel() *menuModel {
	return &menuModel{
		items: []menuItem{
			{title: "Sign in", page: pageSignIn},
			{title: "Create account", page: pageSignUp},
			{title: "About", page: pageAbout},
		},
	}
}

func (m *menuModel) Init() tea.Cmd {
	return nil
}

func (m *menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		page := m.items[m.idx].page
		return m, func() tea.Msg { return NavigateTo{Page: page} }
	}

	return m, nil
}

func (m *menuModel) View() string {
	var b strings.Builder
	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %d  %s", cursor, i+1, item.title)
		if i == m.idx {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return renderPage("TASK DESK", strings.TrimRight(b.String(), "\n"), "↑/↓: select │ enter: open │ q: quit")
}
