// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/session"
)

// authProvider is the part of session.Provider the auth service drives.
type authProvider interface {
	Current() session.Identity
	SignIn(ctx context.Context, email, password string) (session.Identity, error)
	SignUp(ctx context.Context, email, password, fullName string) (session.Identity, error)
	Restore(ctx context.Context) (session.Identity, error)
	SignOut(ctx context.Context) error
}

type clientAuthService struct {
	provider authProvider
	logger   *logger.Logger
}

func NewClientAuthService(provider authProvider, log *logger.Logger) ClientAuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &clientAuthService{provider: provider, logger: log}
}

func (a *clientAuthService) SignIn(ctx context.Context, email, password string) (session.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Identity{}, session.ErrEmptyCredentials
	}

	id, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.SignIn").Msg("sign in failed")
		return session.Identity{}, mapAuthError(err)
	}
	return id, nil
}

func (a *clientAuthService) SignUp(ctx context.Context, email, password, fullName string) (session.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Identity{}, session.ErrEmptyCredentials
	}

	id, err := a.provider.SignUp(ctx, email, password, strings.TrimSpace(fullName))
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.SignUp").Msg("sign up failed")
		return session.Identity{}, mapAuthError(err)
	}
	return id, nil
}

// Restore reports ok=false without an error when no session was saved.
func (a *clientAuthService) Restore(ctx context.Context) (session.Identity, bool, error) {
	id, err := a.provider.Restore(ctx)
	switch {
	case errors.Is(err, session.ErrNoStoredSession):
		return session.Identity{}, false, nil
	case err != nil:
		a.logger.Warn().Err(err).Str("func", "clientAuthService.Restore").Msg("restoring session failed")
		return session.Identity{}, false, mapAuthError(err)
	}
	return id, true, nil
}

func (a *clientAuthService) SignOut(ctx context.Context) error {
	if err := a.provider.SignOut(ctx); err != nil {
		return mapAuthError(err)
	}
	return nil
}

func (a *clientAuthService) Current() session.Identity {
	return a.provider.Current()
}
