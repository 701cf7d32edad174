// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-desk/internal/adapter"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/models"
)

type fakeProvider struct {
	current session.Identity

	signInErr  error
	signUpErr  error
	restoreErr error
	signOutErr error

	calls []string
}

func (f *fakeProvider) Current() session.Identity { return f.current }

func (f *fakeProvider) SignIn(_ context.Context, email, _ string) (session.Identity, error) {
	f.calls = append(f.calls, "sign_in:"+email)
	if f.signInErr != nil {
		return session.Identity{}, f.signInErr
	}
	f.current = identityOf("u1", models.RoleStaff)
	return f.current, nil
}

func (f *fakeProvider) SignUp(_ context.Context, email, _, fullName string) (session.Identity, error) {
	f.calls = append(f.calls, "sign_up:"+email+":"+fullName)
	if f.signUpErr != nil {
		return session.Identity{}, f.signUpErr
	}
	f.current = identityOf("u2", models.RoleStaff)
	return f.current, nil
}

func (f *fakeProvider) Restore(context.Context) (session.Identity, error) {
	f.calls = append(f.calls, "restore")
	if f.restoreErr != nil {
		return session.Identity{}, f.restoreErr
	}
	f.current = identityOf("u1", models.RoleStaff)
	return f.current, nil
}

func (f *fakeProvider) SignOut(context.Context) error {
	f.calls = append(f.calls, "sign_out")
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.current = session.Identity{}
	return nil
}

func TestClientAuthService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("success trims email", func(t *testing.T) {
		p := &fakeProvider{}
		svc := NewClientAuthService(p, nil)

		id, err := svc.SignIn(ctx, "  jane@example.com ", "secret")
		require.NoError(t, err)
		assert.Equal(t, "u1", id.UserID())
		assert.Equal(t, []string{"sign_in:jane@example.com"}, p.calls)
		assert.Equal(t, id, svc.Current())
	})

	t.Run("empty credentials never reach the provider", func(t *testing.T) {
		p := &fakeProvider{}
		svc := NewClientAuthService(p, nil)

		_, err := svc.SignIn(ctx, " ", "secret")
		assert.ErrorIs(t, err, session.ErrEmptyCredentials)
		assert.Empty(t, p.calls)
	})

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"unauthorized", adapter.ErrUnauthorized, ErrWrongCredentials},
		{"invalid_credentials body", fmt.Errorf("%w: {\"error_code\":\"invalid_credentials\"}", adapter.ErrBadRequest), ErrWrongCredentials},
		{"other bad request", fmt.Errorf("%w: {\"error_code\":\"weak_password\"}", adapter.ErrBadRequest), ErrInvalidDataProvided},
		{"backend down", adapter.ErrBadGateway, ErrBackendUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewClientAuthService(&fakeProvider{signInErr: tt.err}, nil)
			_, err := svc.SignIn(ctx, "jane@example.com", "secret")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	p := &fakeProvider{}
	svc := NewClientAuthService(p, nil)
	id, err := svc.SignUp(ctx, "new@example.com", "secret", " New User ")
	require.NoError(t, err)
	assert.Equal(t, "u2", id.UserID())
	assert.Equal(t, []string{"sign_up:new@example.com:New User"}, p.calls)

	exists := fmt.Errorf("%w: {\"error_code\":\"user_already_exists\"}", adapter.ErrBadRequest)
	svc = NewClientAuthService(&fakeProvider{signUpErr: exists}, nil)
	_, err = svc.SignUp(ctx, "new@example.com", "secret", "")
	assert.ErrorIs(t, err, ErrAccountExists)

	_, err = svc.SignUp(ctx, "new@example.com", "", "")
	assert.ErrorIs(t, err, session.ErrEmptyCredentials)
}

func TestClientAuthService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("restored", func(t *testing.T) {
		svc := NewClientAuthService(&fakeProvider{}, nil)
		id, ok, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "u1", id.UserID())
	})

	t.Run("nothing stored", func(t *testing.T) {
		svc := NewClientAuthService(&fakeProvider{restoreErr: session.ErrNoStoredSession}, nil)
		_, ok, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("refresh rejected", func(t *testing.T) {
		svc := NewClientAuthService(&fakeProvider{restoreErr: session.ErrSessionExpired}, nil)
		_, ok, err := svc.Restore(ctx)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestClientAuthService_SignOut(t *testing.T) {
	ctx := context.Background()

	p := &fakeProvider{current: identityOf("u1", models.RoleStaff)}
	svc := NewClientAuthService(p, nil)
	require.NoError(t, svc.SignOut(ctx))
	assert.True(t, svc.Current().IsZero())

	svc = NewClientAuthService(&fakeProvider{signOutErr: session.ErrNotSignedIn}, nil)
	assert.ErrorIs(t, svc.SignOut(ctx), ErrNotSignedIn)
}
