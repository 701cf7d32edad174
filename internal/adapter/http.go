// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-desk/internal/config"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/utils"
	"github.com/MKhiriev/go-task-desk/models"
	"github.com/go-resty/resty/v2"
)

const (
	authTokenPath = "/auth/v1/token"
	authSignUp    = "/auth/v1/signup"
	authLogout    = "/auth/v1/logout"
	restTasks     = "/rest/v1/tasks"
	restProfiles  = "/rest/v1/profiles"

	// taskSelect joins the company name and the assignee projection.
	taskSelect = "*,company:companies(name),assignee:profiles!assignee_id(full_name,avatar_url)"

	acceptObject = "application/vnd.pgrst.object+json"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL, request
// timeout and the project API key header.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient().WithAPIKey(appCfg.APIKey)
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Content-Type", "application/json")

	return &httpServerAdapter{
		client: client,
		now:    time.Now,
		logger: logger.WithComponent("adapter"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent data requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// authResponse is the body returned by the token and signup endpoints.
type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (r authResponse) session(now time.Time) models.Session {
	s := models.Session{
		UserID:       r.User.ID,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
	switch {
	case r.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(r.ExpiresAt, 0).UTC()
	case r.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second).UTC()
	}
	return s
}

func (h *httpServerAdapter) authCall(ctx context.Context, op, path string, query map[string]string, body any) (models.Session, error) {
	var out authResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetBody(body).
		SetResult(&out).
		Post(path)
	if err != nil {
		return models.Session{}, fmt.Errorf("%s request: %w", op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}
	if out.AccessToken == "" {
		return models.Session{}, fmt.Errorf("%s: empty access token in response", op)
	}

	return out.session(h.now()), nil
}

// SignIn implements [ServerAdapter] via
// POST /auth/v1/token?grant_type=password.
func (h *httpServerAdapter) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	return h.authCall(ctx, "sign in", authTokenPath,
		map[string]string{"grant_type": "password"},
		map[string]string{"email": email, "password": password},
	)
}

// SignUp implements [ServerAdapter] via POST /auth/v1/signup.
func (h *httpServerAdapter) SignUp(ctx context.Context, email, password, fullName string) (models.Session, error) {
	return h.authCall(ctx, "sign up", authSignUp, nil, map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	})
}

// RefreshSession implements [ServerAdapter] via
// POST /auth/v1/token?grant_type=refresh_token.
func (h *httpServerAdapter) RefreshSession(ctx context.Context, refreshToken string) (models.Session, error) {
	return h.authCall(ctx, "refresh session", authTokenPath,
		map[string]string{"grant_type": "refresh_token"},
		map[string]string{"refresh_token": refreshToken},
	)
}

// SignOut implements [ServerAdapter] via POST /auth/v1/logout.
func (h *httpServerAdapter) SignOut(ctx context.Context, accessToken string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post(authLogout)
	if err != nil {
		return fmt.Errorf("sign out request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetProfile implements [ServerAdapter] via GET /rest/v1/profiles?id=eq.<id>.
func (h *httpServerAdapter) GetProfile(ctx context.Context, accessToken, userID string) (models.Profile, error) {
	var profile models.Profile

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Accept", acceptObject).
		SetQueryParams(map[string]string{"select": "*", "id": "eq." + userID}).
		SetResult(&profile).
		Get(restProfiles)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

// ListTasks implements [ServerAdapter] via GET /rest/v1/tasks.
func (h *httpServerAdapter) ListTasks(ctx context.Context) ([]models.Task, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParams(map[string]string{
			"select": taskSelect,
			"order":  "due_date.asc.nullslast",
		}).
		Get(restTasks)
	if err != nil {
		return nil, fmt.Errorf("list tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err = json.Unmarshal(resp.Body(), &tasks); err != nil {
		return nil, fmt.Errorf("decode list tasks response: %w", err)
	}

	h.logger.Debug().Int("count", len(tasks)).Msg("tasks fetched")
	return tasks, nil
}

// GetTask implements [ServerAdapter] via GET /rest/v1/tasks?id=eq.<id>.
func (h *httpServerAdapter) GetTask(ctx context.Context, id string) (models.Task, error) {
	var task models.Task

	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", acceptObject).
		SetQueryParams(map[string]string{"select": taskSelect, "id": "eq." + id}).
		SetResult(&task).
		Get(restTasks)
	if err != nil {
		return models.Task{}, fmt.Errorf("get task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// UpdateTask implements [ServerAdapter] via PATCH /rest/v1/tasks?id=eq.<id>.
// The body carries only the patched columns plus the timestamp bookkeeping
// of [models.TaskPatch.Fields].
func (h *httpServerAdapter) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	var task models.Task

	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", acceptObject).
		SetHeader("Prefer", "return=representation").
		SetQueryParams(map[string]string{"select": taskSelect, "id": "eq." + id}).
		SetBody(patch.Fields(h.now())).
		SetResult(&task).
		Patch(restTasks)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// CreateTask implements [ServerAdapter] via POST /rest/v1/tasks.
func (h *httpServerAdapter) CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	var task models.Task

	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", acceptObject).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("select", taskSelect).
		SetBody(draft).
		SetResult(&task).
		Post(restTasks)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// DeleteTask implements [ServerAdapter] via DELETE /rest/v1/tasks?id=eq.<id>.
func (h *httpServerAdapter) DeleteTask(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("id", "eq."+id).
		Delete(restTasks)
	if err != nil {
		return fmt.Errorf("delete task request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
