// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-desk/internal/service"
	"github.com/MKhiriev/go-task-desk/internal/session"
)

const (
	inputEmail = iota
	inputPassword
	inputFullName
)

// loginModel is the sign-in form. With register set it also asks for the
// full name and creates the account.
type loginModel struct {
	ctx      context.Context
	auth     service.ClientAuthService
	register bool

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newLoginModel(ctx context.Context, auth service.ClientAuthService, register bool) *loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	inputs := []textinput.Model{email, password}
	if register {
		fullName := textinput.New()
		fullName.Placeholder = "full name"
		fullName.CharLimit = 120
		fullName.Width = 40
		inputs = append(inputs, fullName)
	}

	return &loginModel{
		ctx:      ctx,
		auth:     auth,
		register: register,
		inputs:   inputs,
	}
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles:
//   - authResultMsg: clears the submitting state and shows the error, if any.
//   - esc: back to the menu.
//   - tab / shift+tab: focus the next / previous input.
//   - enter: validate and submit.
//
// Other keys go to the focused input.
func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = authErrorText(result.err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.tab):
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			email := strings.TrimSpace(m.inputs[inputEmail].Value())
			password := m.inputs[inputPassword].Value()
			if email == "" || password == "" {
				m.errMsg = "Email and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			if m.register {
				return m, m.cmdSignUp(email, password, strings.TrimSpace(m.inputs[inputFullName].Value()))
			}
			return m, m.cmdSignIn(email, password)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) View() string {
	var b strings.Builder
	b.WriteString("Email     │ [")
	b.WriteString(m.inputs[inputEmail].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.inputs[inputPassword].View())
	b.WriteString("]\n")
	if m.register {
		b.WriteString("Full name │ [")
		b.WriteString(m.inputs[inputFullName].View())
		b.WriteString("]\n")
	}

	action := "Sign in"
	title := "SIGN IN"
	if m.register {
		action = "Create account"
		title = "CREATE ACCOUNT"
	}
	if m.submitting {
		b.WriteString("\n[" + action + "...]\n")
	} else {
		b.WriteString("\n[" + action + "]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *loginModel) cmdSignIn(email, password string) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		id, err := auth.SignIn(ctx, email, password)
		return authResultMsg{identity: id, err: err}
	}
}

func (m *loginModel) cmdSignUp(email, password, fullName string) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		id, err := auth.SignUp(ctx, email, password, fullName)
		return authResultMsg{identity: id, err: err}
	}
}

func (m *loginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *loginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func authErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrWrongCredentials):
		return "Wrong email or password"
	case errors.Is(err, service.ErrAccountExists):
		return "An account with this email already exists"
	case errors.Is(err, session.ErrEmptyCredentials):
		return "Email and password are required"
	}
	return humanizeError(err)
}
