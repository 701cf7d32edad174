// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-task-desk/internal/app"
	"github.com/MKhiriev/go-task-desk/internal/devbackend"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/utils"
	"github.com/MKhiriev/go-task-desk/models"
)

type credentialsRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
	Data         struct {
		FullName string `json:"full_name"`
	} `json:"data"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	RefreshToken string      `json:"refresh_token"`
	User         sessionUser `json:"user"`
}

func (h *Handler) writeSession(w http.ResponseWriter, s models.Session) {
	user := sessionUser{ID: s.UserID}
	if profile, err := h.backend.Profile(s.UserID); err == nil {
		user.Email = profile.Email
	}

	utils.WriteJSON(w, sessionResponse{
		AccessToken:  s.AccessToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(time.Until(s.ExpiresAt).Seconds()),
		ExpiresAt:    s.ExpiresAt.Unix(),
		RefreshToken: s.RefreshToken,
		User:         user,
	}, http.StatusOK)
}

// token serves POST /auth/v1/token for the password and refresh_token
// grants.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.token").Msg("Invalid JSON was passed")
		writeAuthError(w, fmt.Errorf("%w: %s", devbackend.ErrInvalidInput, app.MsgInvalidJSON))
		return
	}

	var (
		s   models.Session
		err error
	)
	switch grant := r.URL.Query().Get("grant_type"); grant {
	case "password":
		s, err = h.backend.SignIn(req.Email, req.Password)
	case "refresh_token":
		s, err = h.backend.Refresh(req.RefreshToken)
	default:
		err = fmt.Errorf("%w: unsupported grant_type %q", devbackend.ErrInvalidInput, grant)
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.token").Msg("token grant rejected")
		writeAuthError(w, err)
		return
	}

	log.Debug().Str("user_id", s.UserID).Msg("session issued")
	h.writeSession(w, s)
}

// signUp serves POST /auth/v1/signup.
func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.signUp").Msg("Invalid JSON was passed")
		writeAuthError(w, fmt.Errorf("%w: %s", devbackend.ErrInvalidInput, app.MsgInvalidJSON))
		return
	}

	s, err := h.backend.SignUp(req.Email, req.Password, req.Data.FullName)
	if err != nil {
		if errors.Is(err, devbackend.ErrEmailTaken) {
			log.Info().Str("func", "*Handler.signUp").Msg("email already registered")
		} else {
			log.Err(err).Str("func", "*Handler.signUp").Msg("sign up failed")
		}
		writeAuthError(w, err)
		return
	}

	h.writeSession(w, s)
}

// logout serves POST /auth/v1/logout.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	h.backend.SignOut(userID)
	w.WriteHeader(http.StatusNoContent)
}
