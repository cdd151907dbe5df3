// Package utils provides helpers shared by the server and the client:
// typed context keys, JSON response writing, the resty client wrapper,
// JWT issuing and parsing for admins and visitor sessions, and ID generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-site-forms/models"
)

// contextKey is a private type for context keys that prevents collisions
// with string keys of other packages.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// AdminIDCtxKey stores the authenticated admin identifier (int64).
var AdminIDCtxKey = contextKey("adminID")

// SessionUserCtxKey stores the visitor identity taken from a verified
// session cookie (models.GoogleUser).
var SessionUserCtxKey = contextKey("sessionUser")

// GetAdminIDFromContext retrieves the admin identifier from the context.
// ok is false when the value is missing or has an unexpected type.
func GetAdminIDFromContext(ctx context.Context) (int64, bool) {
	adminID, ok := ctx.Value(AdminIDCtxKey).(int64)
	return adminID, ok
}

// WithSessionUser returns a copy of ctx carrying the visitor identity.
func WithSessionUser(ctx context.Context, user models.GoogleUser) context.Context {
	return context.WithValue(ctx, SessionUserCtxKey, user)
}

// GetSessionUserFromContext returns the verified visitor identity, if any.
func GetSessionUserFromContext(ctx context.Context) (models.GoogleUser, bool) {
	user, ok := ctx.Value(SessionUserCtxKey).(models.GoogleUser)
	if !ok || user.Email == "" {
		return models.GoogleUser{}, false
	}
	return user, true
}
