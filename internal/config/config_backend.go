// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// BackendConfig is the development backend view of [StructuredConfig].
type BackendConfig struct {
	// APIKey is the project key every request must carry.
	APIKey string

	HTTPAddress    string
	RequestTimeout time.Duration

	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration

	Seed bool
}

// GetBackendConfig builds and validates the development backend config.
func GetBackendConfig(args []string) (*BackendConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	backendCfg := &BackendConfig{
		APIKey:         cfg.App.APIKey,
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		TokenSignKey:   cfg.Server.TokenSignKey,
		TokenIssuer:    cfg.Server.TokenIssuer,
		TokenDuration:  cfg.Server.TokenDuration,
		Seed:           cfg.Server.Seed,
	}

	return backendCfg, backendCfg.validate()
}
