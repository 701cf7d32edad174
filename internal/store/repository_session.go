// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/models"
)

type sessionRepository struct {
	*DB
	now    func() time.Time
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] over the local
// database.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		now:    time.Now,
		logger: logger,
	}
}

func (r *sessionRepository) SaveSession(ctx context.Context, s models.Session) error {
	query, args, err := buildSaveSessionQuery(s, r.now())
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.SaveSession").
			Str("user_id", s.UserID).
			Msg("failed to upsert local session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	query, args, err := buildLoadSessionQuery()
	if err != nil {
		return models.Session{}, err
	}

	var (
		s         models.Session
		expiresAt sql.NullTime
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&s.UserID, &s.AccessToken, &s.RefreshToken, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrLocalSessionNotFound
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.LoadSession").
			Msg("failed to read local session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if expiresAt.Valid {
		s.ExpiresAt = expiresAt.Time.UTC()
	}
	return s, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context) error {
	query, args, err := buildDeleteSessionQuery()
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.DeleteSession").
			Msg("failed to delete local session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
