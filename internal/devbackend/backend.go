// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/utils"
	"github.com/MKhiriev/go-task-desk/internal/validators"
	"github.com/MKhiriev/go-task-desk/models"
)

// TasksTable is the table task changes are published for.
const TasksTable = "tasks"

// Settings configures token issuance.
type Settings struct {
	Issuer        string
	SignKey       string
	TokenDuration time.Duration

	// PasswordCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	PasswordCost int
}

// Backend is the in-memory identity provider and task store.
type Backend struct {
	settings  Settings
	hub       *Hub
	ids       *utils.UUIDGenerator
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger

	mu            sync.RWMutex
	users         map[string]models.User // by e-mail
	profiles      map[string]models.Profile
	companies     map[string]string
	tasks         map[string]models.Task
	refreshTokens map[string]string // refresh token -> user id
}

// New creates an empty backend together with its realtime hub.
func New(settings Settings, log *logger.Logger) *Backend {
	if log == nil {
		log = logger.Nop()
	}
	if settings.PasswordCost == 0 {
		settings.PasswordCost = bcrypt.DefaultCost
	}

	b := &Backend{
		settings:      settings,
		ids:           utils.NewUUIDGenerator(),
		validator:     validators.NewTaskValidator(),
		now:           time.Now,
		logger:        log.WithComponent("devbackend"),
		users:         make(map[string]models.User),
		profiles:      make(map[string]models.Profile),
		companies:     make(map[string]string),
		tasks:         make(map[string]models.Task),
		refreshTokens: make(map[string]string),
	}
	b.hub = NewHub(b, log)
	return b
}

// Hub returns the realtime hub fed by task writes.
func (b *Backend) Hub() *Hub {
	return b.hub
}

// SignUp creates a staff account and returns its first session.
func (b *Backend) SignUp(email, password, fullName string) (models.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.settings.PasswordCost)
	if err != nil {
		return models.Session{}, fmt.Errorf("hash password: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.users[email]; exists {
		return models.Session{}, ErrEmailTaken
	}

	profile := models.Profile{
		ID:       b.ids.Generate(),
		Email:    email,
		FullName: strings.TrimSpace(fullName),
		Role:     models.RoleStaff,
	}
	b.users[email] = models.User{ID: profile.ID, Email: email, PasswordHash: hash, CreatedAt: b.now().UTC()}
	b.profiles[profile.ID] = profile

	b.logger.Info().Str("func", "Backend.SignUp").Str("user_id", profile.ID).Msg("account created")
	return b.issueLocked(profile)
}

// SignIn checks the password and returns a new session.
func (b *Backend) SignIn(email, password string) (models.Session, error) {
	email = normalizeEmail(email)

	b.mu.Lock()
	defer b.mu.Unlock()

	user, ok := b.users[email]
	if !ok {
		return models.Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	return b.issueLocked(b.profiles[user.ID])
}

// Refresh rotates a refresh token. Each refresh token is accepted once.
func (b *Backend) Refresh(refreshToken string) (models.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	userID, ok := b.refreshTokens[refreshToken]
	if !ok {
		return models.Session{}, ErrInvalidRefreshToken
	}
	delete(b.refreshTokens, refreshToken)

	profile, ok := b.profiles[userID]
	if !ok {
		return models.Session{}, ErrInvalidRefreshToken
	}
	return b.issueLocked(profile)
}

// SignOut revokes every refresh token of userID. Access tokens stay valid
// until they expire.
func (b *Backend) SignOut(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for token, owner := range b.refreshTokens {
		if owner == userID {
			delete(b.refreshTokens, token)
		}
	}
}

// Authenticate validates an access token and returns the current profile of
// its subject.
func (b *Backend) Authenticate(accessToken string) (models.Profile, error) {
	token, err := utils.ValidateAndParseJWTToken(accessToken, b.settings.SignKey, b.settings.Issuer)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	profile, err := b.Profile(token.UserID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
	}
	return profile, nil
}

// Profile returns the profile of userID.
func (b *Backend) Profile(userID string) (models.Profile, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	profile, ok := b.profiles[userID]
	if !ok {
		return models.Profile{}, ErrProfileNotFound
	}
	return profile, nil
}

// SetRole changes the role of userID. Joined channels see the new role
// after their next credential rebind.
func (b *Backend) SetRole(userID string, role models.Role) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	profile, ok := b.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	profile.Role = role
	b.profiles[userID] = profile
	return nil
}

// AddUser creates an account with a fixed role. It is used for seeding.
func (b *Backend) AddUser(email, password, fullName string, role models.Role) (models.Profile, error) {
	if _, err := b.SignUp(email, password, fullName); err != nil && !errors.Is(err, ErrEmailTaken) {
		return models.Profile{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := b.users[normalizeEmail(email)]
	profile := b.profiles[user.ID]
	profile.Role = role
	b.profiles[user.ID] = profile
	for token, owner := range b.refreshTokens {
		if owner == user.ID {
			delete(b.refreshTokens, token)
		}
	}
	return profile, nil
}

// AddCompany registers a client company and returns its id.
func (b *Backend) AddCompany(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.ids.Generate()
	b.companies[id] = name
	return id
}

func (b *Backend) issueLocked(profile models.Profile) (models.Session, error) {
	token, err := utils.GenerateJWTToken(b.settings.Issuer, profile, b.settings.TokenDuration, b.settings.SignKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("issue access token: %w", err)
	}

	refresh := b.ids.Generate()
	b.refreshTokens[refresh] = profile.ID

	return models.Session{
		UserID:       profile.ID,
		AccessToken:  token.SignedString,
		RefreshToken: refresh,
		ExpiresAt:    token.ExpiresAt.Time.UTC(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
