// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity gates the wizard behind a Google sign-in.
//
// The Gate state machine goes Anonymous → Redirected → Callback and ends in
// Authenticated, or back in Anonymous with a categorized AuthError. It can be
// seeded from the client-visible user cookie or from the query parameters of
// the redirect back from the callback (auth=success&email=...&name=...).
//
// The user cookie is unsigned and only drives what the user sees. Submissions
// are attributed from the signed session cookie, verified by the server.
package identity

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/models"
)

// State is the sign-in state of a Gate.
type State int

const (
	StateAnonymous State = iota
	StateRedirected
	StateCallback
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateRedirected:
		return "redirected"
	case StateCallback:
		return "callback"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Redirect query parameters written by the callback.
const (
	ParamAuth    = "auth"
	ParamEmail   = "email"
	ParamName    = "name"
	ParamPicture = "picture"
	ParamReason  = "reason"
	ParamDetail  = "detail"

	AuthSuccess = "success"
	AuthFailure = "error"
)

var redirectParams = []string{ParamAuth, ParamEmail, ParamName, ParamPicture, ParamReason, ParamDetail}

type Gate struct {
	mu    sync.Mutex
	state State
	user  models.GoogleUser
	err   *AuthError
}

func NewGate() *Gate {
	return &Gate{state: StateAnonymous}
}

// FromCookie authenticates the gate from a user cookie value. It reports
// whether the cookie held a usable identity; an unusable cookie leaves the
// gate unchanged.
func (g *Gate) FromCookie(value string) bool {
	u, ok := DecodeUser(value)
	if !ok {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticate(u)
	return true
}

// BeginSignIn records that the user was sent to the provider.
func (g *Gate) BeginSignIn() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = StateRedirected
	g.err = nil
}

// Fail returns the gate to Anonymous with err.
func (g *Gate) Fail(err *AuthError) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = StateAnonymous
	g.user = models.GoogleUser{}
	g.err = err
}

// HandleRedirect applies the sign-in outcome carried by the query of rawURL
// and returns the URL with those parameters removed. A URL without an
// outcome leaves the gate unchanged.
func (g *Gate) HandleRedirect(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRedirect, err)
	}

	q := u.Query()
	outcome := q.Get(ParamAuth)
	if outcome == "" {
		return u.String(), nil
	}

	g.mu.Lock()
	g.state = StateCallback
	switch {
	case outcome == AuthSuccess && strings.TrimSpace(q.Get(ParamEmail)) != "":
		g.authenticate(models.GoogleUser{
			Email:   q.Get(ParamEmail),
			Name:    q.Get(ParamName),
			Picture: q.Get(ParamPicture),
		})
	case outcome == AuthFailure:
		g.state = StateAnonymous
		g.err = NewAuthError(ParseCategory(q.Get(ParamReason)), q.Get(ParamDetail))
	default:
		g.state = StateAnonymous
		g.err = NewAuthError(CategoryCancelled, "")
	}
	g.mu.Unlock()

	return Scrub(u), nil
}

// SignOut forgets the identity.
func (g *Gate) SignOut() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = StateAnonymous
	g.user = models.GoogleUser{}
	g.err = nil
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Authenticated reports whether the wizard may be shown.
func (g *Gate) Authenticated() bool {
	return g.State() == StateAuthenticated
}

func (g *Gate) User() models.GoogleUser {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user
}

// Err returns the error of the last failed sign-in, or nil.
func (g *Gate) Err() *AuthError {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *Gate) authenticate(u models.GoogleUser) {
	g.state = StateAuthenticated
	g.user = u
	g.err = nil
}

// Scrub returns u without the sign-in outcome parameters.
func Scrub(u *url.URL) string {
	out := *u
	q := out.Query()
	for _, p := range redirectParams {
		q.Del(p)
	}
	out.RawQuery = q.Encode()
	return out.String()
}

// SuccessURL returns the redirect back to target after a successful sign-in.
func SuccessURL(target string, u models.GoogleUser) string {
	return withParams(target, url.Values{
		ParamAuth:  {AuthSuccess},
		ParamEmail: {u.Email},
		ParamName:  {u.Name},
	})
}

// ErrorURL returns the redirect back to target after a failed sign-in.
func ErrorURL(target string, err *AuthError) string {
	v := url.Values{
		ParamAuth:   {AuthFailure},
		ParamReason: {string(err.Category)},
	}
	if err.Detail != "" {
		v.Set(ParamDetail, err.Detail)
	}
	return withParams(target, v)
}

func withParams(target string, v url.Values) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	for k, vs := range v {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ReturnPath returns the page path a sign-in started from, e.g. "/hy/register"
// or "/en" without a page key.
func ReturnPath(s models.OAuthState) string {
	path := "/" + locale.Parse(s.Locale).String()
	if key := strings.Trim(s.PageKey, "/"); key != "" {
		path += "/" + key
	}
	return path
}
