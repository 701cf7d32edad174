// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// realtime serves GET /realtime/v1/websocket. Channels are authorised by
// the access token carried in each join, not by this request.
func (h *Handler) realtime(w http.ResponseWriter, r *http.Request) {
	h.backend.Hub().ServeWS(w, r)
}
