// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		APIKey  string `json:"api_key"`
		LogFile string `json:"log_file"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Realtime struct {
		Address           string   `json:"address"`
		HeartbeatInterval Duration `json:"heartbeat_interval"`
		JoinTimeout       Duration `json:"join_timeout"`
		ReconnectBase     Duration `json:"reconnect_base"`
		ReconnectMax      Duration `json:"reconnect_max"`
	} `json:"realtime,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval"`
		RefreshSkew     Duration `json:"refresh_skew"`
	} `json:"workers,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		RequestTimeout Duration `json:"request_timeout"`
		Seed           bool     `json:"seed"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			APIKey:  jsonCfg.App.APIKey,
			LogFile: jsonCfg.App.LogFile,
			Version: jsonCfg.App.Version,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Realtime: Realtime{
			Address:           jsonCfg.Realtime.Address,
			HeartbeatInterval: time.Duration(jsonCfg.Realtime.HeartbeatInterval),
			JoinTimeout:       time.Duration(jsonCfg.Realtime.JoinTimeout),
			ReconnectBase:     time.Duration(jsonCfg.Realtime.ReconnectBase),
			ReconnectMax:      time.Duration(jsonCfg.Realtime.ReconnectMax),
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
			RefreshSkew:     time.Duration(jsonCfg.Workers.RefreshSkew),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			TokenSignKey:   jsonCfg.Server.TokenSignKey,
			TokenIssuer:    jsonCfg.Server.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.Server.TokenDuration),
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			Seed:           jsonCfg.Server.Seed,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
