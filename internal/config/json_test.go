// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": { "api_key": "anon-key", "version": "0.3.0" },
		"adapter": { "http_address": "http://localhost:8080", "request_timeout": "15s" },
		"realtime": { "heartbeat_interval": "20s", "reconnect_base": "1s", "reconnect_max": "1m" },
		"storage": { "db": { "dsn": "file:desk.db" } },
		"workers": { "refresh_interval": "45s" },
		"server": {
			"http_address": "localhost:8080",
			"token_sign_key": "jwt_secret",
			"token_duration": "1h",
			"seed": true
		}
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "anon-key", cfg.App.APIKey)
	assert.Equal(t, "0.3.0", cfg.App.Version)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 20*time.Second, cfg.Realtime.HeartbeatInterval)
	assert.Equal(t, time.Second, cfg.Realtime.ReconnectBase)
	assert.Equal(t, time.Minute, cfg.Realtime.ReconnectMax)
	assert.Equal(t, "file:desk.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 45*time.Second, cfg.Workers.RefreshInterval)
	assert.Equal(t, "jwt_secret", cfg.Server.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.Server.TokenDuration)
	assert.True(t, cfg.Server.Seed)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": `), 0o600))

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad-duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"adapter": {"request_timeout": "soon"}}`), 0o600))

	_, err := parseJSON(p)
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Duration
	}{
		{name: "string", in: `"30s"`, want: 30 * time.Second},
		{name: "nanoseconds number", in: `1000000000`, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalJSON([]byte(tt.in)))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(b))
}
