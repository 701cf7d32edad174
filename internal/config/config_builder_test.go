// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that a later source only fills fields
// the earlier ones left unset.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{APIKey: "from-env"}},
		&StructuredConfig{App: App{APIKey: "from-flags", Version: "1.0.0"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.App.APIKey)
	assert.Equal(t, "1.0.0", cfg.App.Version)
}

func TestBuild_ValidationError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Realtime: Realtime{ReconnectBase: time.Minute, ReconnectMax: time.Second},
	})

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidRealtimeConfigs)
}

// ── withEnv / withFlags ───────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":     "env-version",
		"ADAPTER_ADDRESS": "http://env:8080",
	})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "http://env:8080", b.configs[0].Adapter.HTTPAddress)
}

func TestWithFlags_SetsErrorOnBadArgs(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Server.TokenIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].Server.TokenIssuer)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that the env path beats the flag path.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first"
	second := StructuredJSONConfig{}
	second.App.Version = "second"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "first", b.configs[2].App.Version)
}

// ── defaults and views ────────────────────────────────────────────────────────

func TestGetClientConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	// адрес realtime по умолчанию совпадает с REST
	assert.Equal(t, cfg.Adapter.HTTPAddress, cfg.Realtime.Address)
	assert.Equal(t, 25*time.Second, cfg.Realtime.HeartbeatInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Realtime.ReconnectBase)
	assert.Equal(t, 30*time.Second, cfg.Workers.RefreshInterval)
	assert.NotEmpty(t, cfg.App.APIKey)
}

func TestGetClientConfig_EnvOverridesDefaults(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_ADDRESS":  "http://desk.example:8080",
		"REALTIME_ADDRESS": "http://rt.example:4000",
		"APP_API_KEY":      "prod-key",
	})

	cfg, err := GetClientConfig([]string{"-api-key", "flag-key"})
	require.NoError(t, err)

	assert.Equal(t, "http://desk.example:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "http://rt.example:4000", cfg.Realtime.Address)
	assert.Equal(t, "prod-key", cfg.App.APIKey)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		return NewClientConfig(defaultConfig())
	}

	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*ClientConfig) {}},
		{name: "memory dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no address", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "no heartbeat", mutate: func(c *ClientConfig) { c.Realtime.HeartbeatInterval = 0 }, wantErr: ErrInvalidRealtimeConfigs},
		{name: "no refresh interval", mutate: func(c *ClientConfig) { c.Workers.RefreshInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "no api key", mutate: func(c *ClientConfig) { c.App.APIKey = "" }, wantErr: ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetBackendConfig(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_TOKEN_SIGN_KEY": "s3cret"})

	cfg, err := GetBackendConfig([]string{"-a", "127.0.0.1:9999", "-seed"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.HTTPAddress)
	assert.Equal(t, "s3cret", cfg.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.TokenDuration)
	assert.True(t, cfg.Seed)
}
