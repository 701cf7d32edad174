// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks cross-section invariants of the merged config. Binary
// specific requirements are checked by the views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Realtime.ReconnectMax > 0 && cfg.Realtime.ReconnectMax < cfg.Realtime.ReconnectBase {
		return fmt.Errorf("%w: reconnect max below reconnect base", ErrInvalidRealtimeConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Realtime.Address == "" || cfg.Realtime.HeartbeatInterval <= 0 || cfg.Realtime.ReconnectBase <= 0 {
		return ErrInvalidRealtimeConfigs
	}

	if cfg.Workers.RefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.APIKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *BackendConfig) validate() error {
	if cfg.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.TokenSignKey == "" || cfg.TokenDuration <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.APIKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
