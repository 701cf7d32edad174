// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/utils"
)

// withAPIKey requires the project key in the "apikey" header or, for the
// websocket handshake, the "apikey" query parameter. An empty configured
// key disables the check.
func (h *Handler) withAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(utils.APIKeyHeader)
		if key == "" {
			key = r.URL.Query().Get(utils.APIKeyHeader)
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) != 1 {
			logger.FromRequest(r).Warn().Str("uri", r.RequestURI).Msg("request without a valid API key")
			utils.WriteJSON(w, restError{Code: "401", Message: ErrInvalidAPIKey.Error()}, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
