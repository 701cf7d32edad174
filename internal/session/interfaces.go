// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"

	"github.com/MKhiriev/go-task-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// AuthBackend is the identity provider as seen by the client.
type AuthBackend interface {
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	SignUp(ctx context.Context, email, password, fullName string) (models.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetProfile(ctx context.Context, accessToken, userID string) (models.Profile, error)

	// SetToken sets the bearer token used by subsequent data requests.
	SetToken(token string)
}

// Store persists the session between client runs.
type Store interface {
	SaveSession(ctx context.Context, s models.Session) error
	// LoadSession returns an error matching store.ErrLocalSessionNotFound
	// when nothing is stored.
	LoadSession(ctx context.Context) (models.Session, error)
	DeleteSession(ctx context.Context) error
}
