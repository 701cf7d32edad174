// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-desk/internal/adapter"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/mock"
	"github.com/MKhiriev/go-task-desk/internal/session"
	"github.com/MKhiriev/go-task-desk/internal/store"
	"github.com/MKhiriev/go-task-desk/internal/utils"
	"github.com/MKhiriev/go-task-desk/models"
)

func issue(t *testing.T, userID string, ttl time.Duration) models.Session {
	t.Helper()
	tok, err := utils.GenerateJWTToken("test", models.Profile{ID: userID}, ttl, "key")
	require.NoError(t, err)
	return models.Session{AccessToken: tok.SignedString, RefreshToken: "refresh-" + userID}
}

type recorder struct {
	events []session.Event
}

func (r *recorder) record(ev session.Event) { r.events = append(r.events, ev) }

func newProvider(t *testing.T) (*session.Provider, *mock.MockAuthBackend, *mock.MockStore, *recorder) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockAuthBackend(ctrl)
	st := mock.NewMockStore(ctrl)
	p := session.NewProvider(backend, st, logger.Nop())
	rec := &recorder{}
	p.Subscribe(rec.record)
	return p, backend, st, rec
}

// ── SignIn ──────────────────────────────────────────────────────────────────

func TestProvider_SignIn_FetchesProfileBeforeEmitting(t *testing.T) {
	p, backend, st, rec := newProvider(t)
	ctx := context.Background()
	sess := issue(t, "user-a", time.Hour)
	profile := models.Profile{ID: "user-a", Email: "a@x.io", Role: models.RoleManager}

	gomock.InOrder(
		backend.EXPECT().SignIn(ctx, "a@x.io", "pw").Return(sess, nil),
		backend.EXPECT().GetProfile(ctx, sess.AccessToken, "user-a").Return(profile, nil),
	)
	st.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)
	backend.EXPECT().SetToken(sess.AccessToken)

	id, err := p.SignIn(ctx, "a@x.io", "pw")
	require.NoError(t, err)

	assert.Equal(t, "user-a", id.UserID())
	assert.Equal(t, models.RoleManager, id.Profile.Role)
	assert.False(t, id.Session.ExpiresAt.IsZero(), "expiry is filled from the token")
	assert.Equal(t, id, p.Current())

	require.Len(t, rec.events, 1)
	changed, ok := rec.events[0].(session.IdentityChanged)
	require.True(t, ok)
	assert.Equal(t, models.RoleManager, changed.Next.Profile.Role)
}

func TestProvider_SignIn_EmptyCredentials(t *testing.T) {
	p, _, _, _ := newProvider(t)

	_, err := p.SignIn(context.Background(), "", "pw")
	assert.ErrorIs(t, err, session.ErrEmptyCredentials)
}

func TestProvider_SignIn_BackendError(t *testing.T) {
	p, backend, _, rec := newProvider(t)
	ctx := context.Background()

	backend.EXPECT().SignIn(ctx, "a@x.io", "bad").Return(models.Session{}, adapter.ErrUnauthorized)

	_, err := p.SignIn(ctx, "a@x.io", "bad")
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Empty(t, rec.events)
	assert.True(t, p.Current().IsZero())
}

func TestProvider_SignIn_ProfileFailureFallsBackToStaff(t *testing.T) {
	p, backend, st, _ := newProvider(t)
	ctx := context.Background()
	sess := issue(t, "user-a", time.Hour)

	backend.EXPECT().SignIn(ctx, "a@x.io", "pw").Return(sess, nil)
	backend.EXPECT().GetProfile(ctx, sess.AccessToken, "user-a").Return(models.Profile{}, errors.New("boom"))
	backend.EXPECT().SetToken(gomock.Any())
	st.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	id, err := p.SignIn(ctx, "a@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, id.Profile.Role)
}

// ── Refresh ─────────────────────────────────────────────────────────────────

func TestProvider_Refresh_SameUserRotates(t *testing.T) {
	p, backend, st, rec := newProvider(t)
	ctx := context.Background()
	first := issue(t, "user-a", time.Minute)
	second := issue(t, "user-a", time.Hour)

	backend.EXPECT().SignIn(ctx, "a@x.io", "pw").Return(first, nil)
	backend.EXPECT().GetProfile(ctx, first.AccessToken, "user-a").Return(models.Profile{ID: "user-a", Role: models.RoleStaff}, nil)
	backend.EXPECT().RefreshSession(ctx, "refresh-user-a").Return(second, nil)
	backend.EXPECT().SetToken(gomock.Any()).Times(2)
	st.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil).Times(2)

	_, err := p.SignIn(ctx, "a@x.io", "pw")
	require.NoError(t, err)

	id, err := p.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.AccessToken, id.Token())

	require.Len(t, rec.events, 2)
	rotated, ok := rec.events[1].(session.CredentialRotated)
	require.True(t, ok, "rotation must not be reported as identity change")
	assert.Equal(t, second.AccessToken, rotated.Identity.Token())
}

func TestProvider_Refresh_RejectedSignsOut(t *testing.T) {
	p, backend, st, rec := newProvider(t)
	ctx := context.Background()
	first := issue(t, "user-a", time.Minute)

	backend.EXPECT().SignIn(ctx, "a@x.io", "pw").Return(first, nil)
	backend.EXPECT().GetProfile(ctx, gomock.Any(), gomock.Any()).Return(models.Profile{ID: "user-a", Role: models.RoleStaff}, nil)
	backend.EXPECT().RefreshSession(ctx, "refresh-user-a").Return(models.Session{}, adapter.ErrUnauthorized)
	backend.EXPECT().SetToken(gomock.Any()).Times(2)
	st.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)
	st.EXPECT().DeleteSession(ctx).Return(nil)

	_, err := p.SignIn(ctx, "a@x.io", "pw")
	require.NoError(t, err)

	_, err = p.Refresh(ctx)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.True(t, p.Current().IsZero())
	require.Len(t, rec.events, 2)
	assert.IsType(t, session.SignedOut{}, rec.events[1])
}

func TestProvider_Refresh_NotSignedIn(t *testing.T) {
	p, _, _, _ := newProvider(t)

	_, err := p.Refresh(context.Background())
	assert.ErrorIs(t, err, session.ErrNotSignedIn)
}

// ── Restore / SignOut ───────────────────────────────────────────────────────

func TestProvider_Restore_NothingStored(t *testing.T) {
	p, _, st, _ := newProvider(t)
	ctx := context.Background()

	st.EXPECT().LoadSession(ctx).Return(models.Session{}, store.ErrLocalSessionNotFound)

	_, err := p.Restore(ctx)
	assert.ErrorIs(t, err, session.ErrNoStoredSession)
}

func TestProvider_Restore_RefreshesExpiredToken(t *testing.T) {
	p, backend, st, rec := newProvider(t)
	ctx := context.Background()
	stale := issue(t, "user-a", time.Hour)
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	fresh := issue(t, "user-a", time.Hour)

	st.EXPECT().LoadSession(ctx).Return(stale, nil)
	backend.EXPECT().RefreshSession(ctx, stale.RefreshToken).Return(fresh, nil)
	backend.EXPECT().GetProfile(ctx, fresh.AccessToken, "user-a").Return(models.Profile{ID: "user-a", Role: models.RoleAdmin}, nil)
	backend.EXPECT().SetToken(fresh.AccessToken)
	st.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	id, err := p.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.AccessToken, id.Token())
	require.Len(t, rec.events, 1)
	assert.IsType(t, session.IdentityChanged{}, rec.events[0])
}

func TestProvider_SignOut_ClearsEvenIfRemoteFails(t *testing.T) {
	p, backend, st, rec := newProvider(t)
	ctx := context.Background()
	sess := issue(t, "user-a", time.Hour)

	backend.EXPECT().SignIn(ctx, "a@x.io", "pw").Return(sess, nil)
	backend.EXPECT().GetProfile(ctx, gomock.Any(), gomock.Any()).Return(models.Profile{ID: "user-a", Role: models.RoleStaff}, nil)
	backend.EXPECT().SetToken(gomock.Any()).Times(2)
	backend.EXPECT().SignOut(ctx, sess.AccessToken).Return(errors.New("offline"))
	st.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)
	st.EXPECT().DeleteSession(ctx).Return(nil)

	_, err := p.SignIn(ctx, "a@x.io", "pw")
	require.NoError(t, err)

	require.NoError(t, p.SignOut(ctx))
	assert.True(t, p.Current().IsZero())
	require.Len(t, rec.events, 2)
	assert.IsType(t, session.SignedOut{}, rec.events[1])

	// повторный выход ничего не делает
	require.NoError(t, p.SignOut(ctx))
}

func TestProvider_Subscribe_Unsubscribe(t *testing.T) {
	p, backend, st, _ := newProvider(t)
	ctx := context.Background()
	sess := issue(t, "user-a", time.Hour)

	calls := 0
	cancel := p.Subscribe(func(session.Event) { calls++ })
	cancel()

	backend.EXPECT().SignIn(ctx, "a@x.io", "pw").Return(sess, nil)
	backend.EXPECT().GetProfile(ctx, gomock.Any(), gomock.Any()).Return(models.Profile{ID: "user-a"}, nil)
	backend.EXPECT().SetToken(gomock.Any())
	st.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, err := p.SignIn(ctx, "a@x.io", "pw")
	require.NoError(t, err)
	assert.Zero(t, calls)
}
