// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-desk/internal/session"
)

const (
	pageMenu   = "menu"
	pageSignIn = "sign_in"
	pageSignUp = "sign_up"
	pageAbout  = "about"
)

// rootModel routes between the pages of the sign-in flow and ends the
// program once a page reports a signed-in identity.
type rootModel struct {
	pages   map[string]tea.Model
	current string

	identity   session.Identity
	quitByUser bool
}

func newRootModel(pages map[string]tea.Model, start string) rootModel {
	return rootModel{pages: pages, current: start}
}

func (m rootModel) Init() tea.Cmd {
	if page, ok := m.pages[m.current]; ok {
		return page.Init()
	}
	return nil
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitByUser = true
			return m, tea.Quit
		}
		if msg.String() == "q" && m.current == pageMenu {
			m.quitByUser = true
			return m, tea.Quit
		}
	case NavigateTo:
		if _, ok := m.pages[msg.Page]; ok {
			m.current = msg.Page
			return m, m.pages[m.current].Init()
		}
		return m, nil
	case authResultMsg:
		if msg.err == nil && !msg.identity.IsZero() {
			m.identity = msg.identity
			return m, tea.Quit
		}
	}

	page, ok := m.pages[m.current]
	if !ok {
		return m, nil
	}
	next, cmd := page.Update(msg)
	m.pages[m.current] = next
	return m, cmd
}

func (m rootModel) View() string {
	if page, ok := m.pages[m.current]; ok {
		return appStyle.Render(page.View())
	}
	return ""
}
