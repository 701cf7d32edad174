// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-task-desk/internal/app"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/utils"
	"github.com/MKhiriev/go-task-desk/models"
)

// auth is an HTTP middleware that enforces bearer authentication.
//
// It extracts the access token from the "Authorization" header, resolves it
// to a profile via the backend and stores the user's ID and role in the
// request context under [utils.UserIDCtxKey] and [utils.RoleCtxKey].
// Requests without a valid token are rejected with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		profile, err := h.backend.Authenticate(tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, profile.ID)
		ctx = context.WithValue(ctx, utils.RoleCtxKey, profile.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// viewerFromRequest rebuilds the caller's identity stored by [Handler.auth].
func viewerFromRequest(r *http.Request) (models.Profile, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return models.Profile{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return models.Profile{ID: userID, Role: role}, true
}

// getTokenFromAuthHeader extracts the token from "Authorization: <scheme> <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
