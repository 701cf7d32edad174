// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "object", data: map[string]string{"key": "value"}, status: http.StatusOK, wantBody: `{"key":"value"}`},
		{name: "array", data: []int{1, 2}, status: http.StatusCreated, wantBody: `[1,2]`},
		{name: "empty slice", data: []string{}, status: http.StatusOK, wantBody: `[]`},
		{name: "nil", data: nil, status: http.StatusNotAcceptable, wantBody: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteJSON_MarshalError(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]any{"ch": make(chan int)}, http.StatusOK)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, "application/json", w.Header().Get("Content-Type"))
}

func TestWriteText(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteText(w, "1.0.0", http.StatusOK)

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "1.0.0", w.Body.String())
}
