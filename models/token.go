// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by access tokens.
//
// Besides the registered claims it records the e-mail and role the token was
// issued for so the backend can evaluate row visibility without a lookup.
type TokenClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// Token wraps a JWT access token with convenience accessors.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	TokenClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the parsed "sub" claim.
	UserID string `json:"-"`
}

// GetUserID returns the "sub" claim.
func (t *Token) GetUserID() (string, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if userID == "" {
		return "", fmt.Errorf("error extracting UserID from token: empty subject")
	}
	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
