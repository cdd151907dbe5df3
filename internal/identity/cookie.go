package identity

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-site-forms/models"
)

const (
	// UserCookieName is the client-visible cookie holding the JSON identity.
	UserCookieName = "google_user"
	// SessionCookieName is the http-only cookie holding the signed session.
	SessionCookieName = "session"
	// StateCookieName holds the nonce of an in-flight sign-in.
	StateCookieName = "oauth_state"

	CookieMaxAge      = 7 * 24 * time.Hour
	StateCookieMaxAge = 10 * time.Minute
)

// EncodeUser returns the cookie value for u: URL-escaped JSON.
func EncodeUser(u models.GoogleUser) (string, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(raw)), nil
}

// DecodeUser parses a user cookie value. A value that does not decode to an
// identity with a non-empty email reports false.
func DecodeUser(value string) (models.GoogleUser, bool) {
	if value == "" {
		return models.GoogleUser{}, false
	}
	raw, err := url.QueryUnescape(value)
	if err != nil {
		return models.GoogleUser{}, false
	}

	var u models.GoogleUser
	if err = json.Unmarshal([]byte(raw), &u); err != nil {
		return models.GoogleUser{}, false
	}
	if strings.TrimSpace(u.Email) == "" {
		return models.GoogleUser{}, false
	}
	return u, true
}

// EncodeState returns the JSON "state" parameter of a sign-in.
func EncodeState(s models.OAuthState) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeState parses the "state" parameter of a callback. Malformed state
// yields the zero value.
func DecodeState(raw string) models.OAuthState {
	var s models.OAuthState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return models.OAuthState{}
	}
	return s
}
