// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// GoogleUser is the identity returned by the OAuth provider and stored in
// the client-visible "google_user" cookie.
type GoogleUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// OAuthState is carried through the provider round-trip in the "state"
// parameter so the callback can restore the originating page. Nonce must
// match the value of the short-lived state cookie set on sign-in.
type OAuthState struct {
	Locale  string `json:"locale"`
	PageKey string `json:"pageKey"`
	Nonce   string `json:"nonce,omitempty"`
}

// SessionClaims are the claims of the signed, http-only session cookie.
// Only a session that verifies is used to attribute submissions.
type SessionClaims struct {
	jwt.RegisteredClaims

	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// User returns the identity carried by the claims.
func (c SessionClaims) User() GoogleUser {
	return GoogleUser{Email: c.Email, Name: c.Name, Picture: c.Picture}
}
