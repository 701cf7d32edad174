// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up            key.Binding
	down          key.Binding
	enter         key.Binding
	esc           key.Binding
	tab           key.Binding
	backtab       key.Binding
	quit          key.Binding
	logout        key.Binding
	toggle        key.Binding
	search        key.Binding
	filter        key.Binding
	mine          key.Binding
	sort          key.Binding
	copy          key.Binding
	notifications key.Binding
	readAll       key.Binding
	clear         key.Binding
	about         key.Binding
}

var keys = keyMap{
	up:            key.NewBinding(key.WithKeys("up", "k")),
	down:          key.NewBinding(key.WithKeys("down", "j")),
	enter:         key.NewBinding(key.WithKeys("enter")),
	esc:           key.NewBinding(key.WithKeys("esc")),
	tab:           key.NewBinding(key.WithKeys("tab")),
	backtab:       key.NewBinding(key.WithKeys("shift+tab")),
	quit:          key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:        key.NewBinding(key.WithKeys("L")),
	toggle:        key.NewBinding(key.WithKeys(" ")),
	search:        key.NewBinding(key.WithKeys("/")),
	filter:        key.NewBinding(key.WithKeys("f")),
	mine:          key.NewBinding(key.WithKeys("m")),
	sort:          key.NewBinding(key.WithKeys("s")),
	copy:          key.NewBinding(key.WithKeys("y")),
	notifications: key.NewBinding(key.WithKeys("n")),
	readAll:       key.NewBinding(key.WithKeys("r")),
	clear:         key.NewBinding(key.WithKeys("x")),
	about:         key.NewBinding(key.WithKeys("?")),
}
