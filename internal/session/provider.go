// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-task-desk/internal/adapter"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/store"
	"github.com/MKhiriev/go-task-desk/internal/utils"
	"github.com/MKhiriev/go-task-desk/models"
)

// Provider owns the current Identity. It signs users in and out, restores a
// persisted session, rotates the access token, and tells subscribers about
// every transition as a classified Event.
//
// The profile of a new user is fetched before the IdentityChanged event is
// emitted, so subscribers always see a role.
type Provider struct {
	backend AuthBackend
	store   Store
	log     *logger.Logger

	// opMu serialises sign-in, refresh and sign-out.
	opMu sync.Mutex

	mu        sync.RWMutex
	current   Identity
	listeners map[int]func(Event)
	nextID    int
}

// NewProvider creates a signed-out Provider.
func NewProvider(backend AuthBackend, st Store, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &Provider{
		backend:   backend,
		store:     st,
		log:       log.WithComponent("session"),
		listeners: make(map[int]func(Event)),
	}
}

// Current returns the signed-in identity, or a zero Identity.
func (p *Provider) Current() Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Subscribe registers fn to be called after every transition, in order, on
// the goroutine that caused it. fn must not block. The returned function
// unregisters it.
func (p *Provider) Subscribe(fn func(Event)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// SignIn authenticates with e-mail and password.
func (p *Provider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	if email == "" || password == "" {
		return Identity{}, ErrEmptyCredentials
	}

	p.opMu.Lock()
	defer p.opMu.Unlock()

	sess, err := p.backend.SignIn(ctx, email, password)
	if err != nil {
		return Identity{}, fmt.Errorf("sign in: %w", err)
	}
	return p.establish(ctx, sess)
}

// SignUp registers a new account and signs it in.
func (p *Provider) SignUp(ctx context.Context, email, password, fullName string) (Identity, error) {
	if email == "" || password == "" {
		return Identity{}, ErrEmptyCredentials
	}

	p.opMu.Lock()
	defer p.opMu.Unlock()

	sess, err := p.backend.SignUp(ctx, email, password, fullName)
	if err != nil {
		return Identity{}, fmt.Errorf("sign up: %w", err)
	}
	return p.establish(ctx, sess)
}

// Restore signs in with the session persisted by a previous run. A stored
// access token that is already expired is refreshed first. It returns
// ErrNoStoredSession when there is nothing to restore.
func (p *Provider) Restore(ctx context.Context) (Identity, error) {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	sess, err := p.store.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return Identity{}, ErrNoStoredSession
	}
	if err != nil {
		return Identity{}, fmt.Errorf("load stored session: %w", err)
	}

	if sess.ExpiresWithin(0, timeNow()) {
		p.log.Debug().Str("func", "Provider.Restore").Msg("stored access token expired, refreshing")
		sess, err = p.backend.RefreshSession(ctx, sess.RefreshToken)
		if err != nil {
			if errors.Is(err, adapter.ErrUnauthorized) {
				_ = p.store.DeleteSession(ctx)
				return Identity{}, ErrSessionExpired
			}
			return Identity{}, fmt.Errorf("refresh stored session: %w", err)
		}
	}

	return p.establish(ctx, sess)
}

// Refresh exchanges the refresh token for a new access token. For the same
// user this emits CredentialRotated. A rejected refresh token signs the user
// out and returns ErrSessionExpired.
func (p *Provider) Refresh(ctx context.Context) (Identity, error) {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	prev := p.Current()
	if prev.IsZero() {
		return Identity{}, ErrNotSignedIn
	}

	sess, err := p.backend.RefreshSession(ctx, prev.Session.RefreshToken)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			p.log.Warn().Str("func", "Provider.Refresh").Str("user_id", prev.UserID()).Msg("refresh token rejected, signing out")
			p.clear(ctx)
			return Identity{}, ErrSessionExpired
		}
		return Identity{}, fmt.Errorf("refresh session: %w", err)
	}

	sess, err = normalize(sess)
	if err != nil {
		return Identity{}, err
	}
	if sess.UserID != prev.UserID() {
		return p.establish(ctx, sess)
	}

	next := Identity{Session: sess, Profile: prev.Profile}
	p.persist(ctx, sess)
	p.set(next)
	return next, nil
}

// SignOut revokes the session at the identity provider (best effort) and
// clears it locally.
func (p *Provider) SignOut(ctx context.Context) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	prev := p.Current()
	if prev.IsZero() {
		return nil
	}

	if err := p.backend.SignOut(ctx, prev.Token()); err != nil {
		p.log.Warn().Err(err).Str("func", "Provider.SignOut").Msg("remote sign out failed, clearing local session anyway")
	}
	p.clear(ctx)
	return nil
}

// establish fetches the profile for sess, persists it and publishes the new
// identity.
func (p *Provider) establish(ctx context.Context, sess models.Session) (Identity, error) {
	sess, err := normalize(sess)
	if err != nil {
		return Identity{}, err
	}

	profile, err := p.backend.GetProfile(ctx, sess.AccessToken, sess.UserID)
	if err != nil {
		// least-privileged fallback keeps the user working when the profile
		// row is missing or unreadable
		p.log.Warn().Err(err).Str("func", "Provider.establish").Str("user_id", sess.UserID).Msg("profile unavailable, assuming staff role")
		profile = models.Profile{ID: sess.UserID, Role: models.RoleStaff}
	}
	if profile.Role == "" {
		profile.Role = models.RoleStaff
	}

	next := Identity{Session: sess, Profile: profile}
	p.persist(ctx, sess)
	p.set(next)

	p.log.Info().Str("func", "Provider.establish").Str("user_id", sess.UserID).Str("role", string(profile.Role)).Msg("signed in")
	return next, nil
}

func (p *Provider) persist(ctx context.Context, sess models.Session) {
	if err := p.store.SaveSession(ctx, sess); err != nil {
		p.log.Warn().Err(err).Str("func", "Provider.persist").Msg("session not persisted")
	}
}

func (p *Provider) clear(ctx context.Context) {
	if err := p.store.DeleteSession(ctx); err != nil {
		p.log.Warn().Err(err).Str("func", "Provider.clear").Msg("stored session not deleted")
	}
	p.set(Identity{})
}

func (p *Provider) set(next Identity) {
	p.mu.Lock()
	prev := p.current
	p.current = next
	listeners := make([]func(Event), 0, len(p.listeners))
	for id := 0; id < p.nextID; id++ {
		if fn, ok := p.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	p.mu.Unlock()

	p.backend.SetToken(next.Token())

	ev, ok := Classify(prev, next)
	if !ok {
		return
	}
	for _, fn := range listeners {
		fn(ev)
	}
}

// normalize fills user id and expiry from the access token claims when the
// identity provider response omitted them.
func normalize(sess models.Session) (models.Session, error) {
	if sess.AccessToken == "" {
		return models.Session{}, ErrInvalidSession
	}

	userID, expiresAt, err := utils.ParseAccessToken(sess.AccessToken)
	if err != nil {
		if sess.UserID == "" {
			return models.Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
		}
		return sess, nil
	}

	if sess.UserID == "" {
		sess.UserID = userID
	}
	if sess.UserID != userID {
		return models.Session{}, fmt.Errorf("%w: token subject does not match user", ErrInvalidSession)
	}
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = expiresAt
	}
	return sess, nil
}
