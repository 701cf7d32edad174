// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-desk/models"
)

var testProfile = models.Profile{ID: "user-1", Email: "a@b.c", Role: models.RoleStaff}

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", testProfile, time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.NotNil(t, token.Token)
	assert.Equal(t, "user-1", token.UserID)
	assert.Equal(t, "test-issuer", token.Issuer)
	assert.Equal(t, models.RoleStaff, token.Role)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		profile  models.Profile
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", testProfile, time.Hour, "k"},
		{"empty subject", "iss", models.Profile{}, time.Hour, "k"},
		{"zero duration", "iss", testProfile, 0, "k"},
		{"empty key", "iss", testProfile, time.Hour, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.profile, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken(t *testing.T) {
	token, err := GenerateJWTToken("iss", testProfile, time.Hour, "key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "key", "iss")
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "a@b.c", parsed.Email)

	_, err = ValidateAndParseJWTToken(token.SignedString, "other-key", "iss")
	assert.Error(t, err, "wrong key")

	_, err = ValidateAndParseJWTToken(token.SignedString, "key", "other-iss")
	assert.Error(t, err, "wrong issuer")
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken("iss", testProfile, -time.Minute, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "key", "iss")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	got, err := ParseBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	for _, bad := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err = ParseBearerToken(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAccessToken(t *testing.T) {
	token, err := GenerateJWTToken("iss", testProfile, time.Hour, "key")
	require.NoError(t, err)

	userID, expiresAt, err := ParseAccessToken(token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	_, _, err = ParseAccessToken("not-a-jwt")
	assert.Error(t, err)
}
