// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args (without the program
// name).
//
// Flags:
//
//	-a backend listen address in format [host]:[port]
//	-server backend base URL used by the client
//	-realtime realtime socket base URL (defaults to -server)
//	-api-key project API key
//	-d database DSN
//	-c/-config json file path with configs
//	-log-file client log file
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-refresh-interval token refresh check interval
//	-seed load sample data into the development backend
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-task-desk", flag.ContinueOnError)

	var serverAddress NetAddress
	var adapterAddress string
	var realtimeAddress string
	var apiKey string
	var databaseDSN string
	var jsonConfigPath string
	var logFile string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var refreshInterval time.Duration
	var seed bool

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&adapterAddress, "server", "", "Backend base URL")
	fs.StringVar(&realtimeAddress, "realtime", "", "Realtime socket base URL")
	fs.StringVar(&apiKey, "api-key", "", "Project API key")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logFile, "log-file", "", "Log file")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Token refresh check interval")
	fs.BoolVar(&seed, "seed", false, "Load sample data")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			APIKey:  apiKey,
			LogFile: logFile,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
		},
		Realtime: Realtime{
			Address: realtimeAddress,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			TokenSignKey:   tokenSignKey,
			TokenIssuer:    tokenIssuer,
			TokenDuration:  tokenDuration,
			RequestTimeout: requestTimeout,
			Seed:           seed,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
