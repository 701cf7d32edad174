// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// task desk client and the development backend. It is populated by merging
// values from environment variables, command-line flags, an optional JSON
// file and finally the built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds settings shared by every binary: the project API key and
	// the log destination.
	App App `envPrefix:"APP_"`

	// Adapter holds the REST endpoint used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Realtime holds the change-feed socket settings used by the client.
	Realtime Realtime `envPrefix:"REALTIME_"`

	// Storage holds the local SQLite database used by the client for the
	// persisted session and notification history.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the development backend listener and token settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level values.
type App struct {
	// APIKey is the public project key sent as the "apikey" header on every
	// REST call and as a query parameter on the realtime socket.
	// Env: APP_API_KEY
	APIKey string `env:"API_KEY"`

	// LogFile is where interactive binaries write their log. Empty means a
	// "logs" file next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds outbound REST settings.
type Adapter struct {
	// HTTPAddress is the base URL of the backend, e.g. "http://localhost:8080".
	// A bare host:port is accepted and prefixed with http://.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every REST call (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Realtime holds change-feed settings.
type Realtime struct {
	// Address overrides the socket base URL. Empty means the adapter address.
	// Env: REALTIME_ADDRESS
	Address string `env:"ADDRESS"`

	// HeartbeatInterval is how often the client pings the socket.
	// Env: REALTIME_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`

	// JoinTimeout bounds the wait for a channel join acknowledgement.
	// Env: REALTIME_JOIN_TIMEOUT
	JoinTimeout time.Duration `env:"JOIN_TIMEOUT"`

	// ReconnectBase is the first reconnect delay; later delays grow
	// exponentially up to ReconnectMax.
	// Env: REALTIME_RECONNECT_BASE
	ReconnectBase time.Duration `env:"RECONNECT_BASE"`

	// ReconnectMax caps the reconnect delay.
	// Env: REALTIME_RECONNECT_MAX
	ReconnectMax time.Duration `env:"RECONNECT_MAX"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path or URI (e.g. "file:desk.db?_foreign_keys=on").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval is how often the token refresh job checks the
	// session expiry.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// RefreshSkew is how long before expiry the access token is refreshed.
	// Env: WORKERS_REFRESH_SKEW
	RefreshSkew time.Duration `env:"REFRESH_SKEW"`
}

// Server holds development backend settings.
type Server struct {
	// HTTPAddress is the TCP address the backend listens on, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// TokenSignKey is the HS256 secret used to sign access tokens.
	// Env: SERVER_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: SERVER_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the access token lifetime (e.g. "1h").
	// Env: SERVER_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Seed loads the sample companies, profiles and tasks on start.
	// Env: SERVER_SEED
	Seed bool `env:"SEED"`
}

// defaultConfig returns the values used for every field no other source set.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			APIKey:  "local-dev-key",
			Version: "dev",
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Realtime: Realtime{
			HeartbeatInterval: 25 * time.Second,
			JoinTimeout:       10 * time.Second,
			ReconnectBase:     500 * time.Millisecond,
			ReconnectMax:      30 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "file:desk.db?_foreign_keys=on"},
		},
		Workers: Workers{
			RefreshInterval: 30 * time.Second,
			RefreshSkew:     2 * time.Minute,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			TokenSignKey:   "local-dev-sign-key",
			TokenIssuer:    "go-task-desk",
			TokenDuration:  time.Hour,
			RequestTimeout: 30 * time.Second,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources. Sources are merged in the following priority order,
// each later source only filling fields that are still unset:
//  1. Environment variables
//  2. Command-line flags (parsed from args)
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
