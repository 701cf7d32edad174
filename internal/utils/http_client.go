// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"github.com/go-resty/resty/v2"
)

// APIKeyHeader carries the public project key on every backend request.
const APIKeyHeader = "apikey"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient().WithAPIKey(key)
//	resp, err := client.R().Get("https://example.com/rest/v1/tasks")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// WithAPIKey attaches key as the [APIKeyHeader] header of every request
// issued by c. An empty key leaves the client unchanged.
func (c *HTTPClient) WithAPIKey(key string) *HTTPClient {
	if key != "" {
		c.SetHeader(APIKeyHeader, key)
	}
	return c
}
