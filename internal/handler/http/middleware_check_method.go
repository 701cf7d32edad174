// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-task-desk/internal/app"
	"github.com/MKhiriev/go-task-desk/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
//
// A request whose path matches a registered route but whose method is not
// handled gets 404 instead of chi's default 405, so unsupported methods do not
// reveal the route. Only exact pattern matches are considered.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var found chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				found = route
				break
			}
		}

		if _, ok := found.Handlers[r.Method]; !ok {
			utils.WriteJSON(w, restError{Code: "404", Message: app.MsgRouteNotFound}, http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
