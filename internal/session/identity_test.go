// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-task-desk/models"
)

func ident(userID, token string, role models.Role) Identity {
	return Identity{
		Session: models.Session{UserID: userID, AccessToken: token},
		Profile: models.Profile{ID: userID, Role: role},
	}
}

func TestClassify(t *testing.T) {
	a1 := ident("a", "tok-1", models.RoleStaff)
	a2 := ident("a", "tok-2", models.RoleStaff)
	aManager := ident("a", "tok-1", models.RoleManager)
	b := ident("b", "tok-3", models.RoleAdmin)

	tests := []struct {
		name   string
		prev   Identity
		next   Identity
		want   Event
		wantOK bool
	}{
		{name: "nothing to nothing", prev: Identity{}, next: Identity{}},
		{name: "first sign in", prev: Identity{}, next: a1, want: IdentityChanged{Next: a1}, wantOK: true},
		{name: "token rotation", prev: a1, next: a2, want: CredentialRotated{Identity: a2}, wantOK: true},
		{name: "user switch", prev: a1, next: b, want: IdentityChanged{Prev: a1, Next: b}, wantOK: true},
		{name: "sign out", prev: a1, next: Identity{}, want: SignedOut{Prev: a1}, wantOK: true},
		{name: "role change", prev: a1, next: aManager, want: IdentityChanged{Prev: a1, Next: aManager}, wantOK: true},
		{name: "unchanged", prev: a1, next: a1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.prev, tt.next)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentity_SameUser(t *testing.T) {
	assert.True(t, ident("a", "1", "").SameUser(ident("a", "2", "")))
	assert.False(t, ident("a", "1", "").SameUser(ident("b", "1", "")))
	assert.False(t, Identity{}.SameUser(Identity{}))
}
