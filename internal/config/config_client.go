// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// APIKey is the public project key.
	APIKey string
	// LogFile is the log destination of the TUI binary.
	LogFile string
	// Version is the build version shown on the dashboard.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the REST base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientRealtime holds change-feed settings used by the subscription
// managers.
type ClientRealtime struct {
	// Address is the socket base URL; it defaults to the adapter address.
	Address           string
	HeartbeatInterval time.Duration
	JoinTimeout       time.Duration
	ReconnectBase     time.Duration
	ReconnectMax      time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RefreshInterval defines how often the token refresh job runs.
	RefreshInterval time.Duration
	// RefreshSkew is how long before expiry a token is refreshed.
	RefreshSkew time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App      ClientApp
	Adapter  ClientAdapter
	Realtime ClientRealtime
	Storage  ClientStorage
	Workers  ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields of cfg relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	realtimeAddress := cfg.Realtime.Address
	if realtimeAddress == "" {
		realtimeAddress = cfg.Adapter.HTTPAddress
	}

	return &ClientConfig{
		App: ClientApp{
			APIKey:  cfg.App.APIKey,
			LogFile: cfg.App.LogFile,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Realtime: ClientRealtime{
			Address:           realtimeAddress,
			HeartbeatInterval: cfg.Realtime.HeartbeatInterval,
			JoinTimeout:       cfg.Realtime.JoinTimeout,
			ReconnectBase:     cfg.Realtime.ReconnectBase,
			ReconnectMax:      cfg.Realtime.ReconnectMax,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			RefreshInterval: cfg.Workers.RefreshInterval,
			RefreshSkew:     cfg.Workers.RefreshSkew,
		},
	}
}
