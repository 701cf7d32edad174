// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-task-desk/internal/app"
	"github.com/MKhiriev/go-task-desk/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Get("/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.withAPIKey)

		// websocket handshake must reach the hijackable writer
		r.Get("/realtime/v1/websocket", h.realtime)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)

			// routes without authorization
			r.Post("/auth/v1/token", h.token)
			r.Post("/auth/v1/signup", h.signUp)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)

				r.Post("/auth/v1/logout", h.logout)
				r.Get("/rest/v1/profiles", h.getProfile)
				r.Get("/rest/v1/tasks", h.listTasks)
				r.Post("/rest/v1/tasks", h.createTask)
				r.Patch("/rest/v1/tasks", h.updateTask)
				r.Delete("/rest/v1/tasks", h.deleteTask)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, restError{Code: "404", Message: app.MsgRouteNotFound}, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
