// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/service"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/google/uuid"
)

// signInCookiePath scopes the state cookie to the sign-in and callback routes.
const signInCookiePath = "/auth/google"

// googleSignIn starts a sign-in: it remembers a nonce in a short-lived
// cookie and redirects to the provider with the nonce, locale and page key
// in the state parameter.
func (h *Handler) googleSignIn(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := models.OAuthState{
		Locale: locale.Parse(q.Get("locale")).String(),
		Nonce:  uuid.NewString(),
	}
	if pageKey := q.Get("pageKey"); service.ValidPageKey(pageKey) {
		state.PageKey = pageKey
	}

	authURL, err := h.services.IdentityService.AuthCodeURL(r.Context(), state)
	if err != nil {
		h.failSignIn(w, r, state, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     identity.StateCookieName,
		Value:    state.Nonce,
		Path:     signInCookiePath,
		MaxAge:   int(identity.StateCookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, authURL, http.StatusFound)
}

// googleCallback finishes a sign-in. On success it sets the visible
// google_user cookie and the http-only session cookie, then redirects back
// to the page the sign-in started from with the identity in the query.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	q := r.URL.Query()
	state := identity.DecodeState(q.Get("state"))

	h.clearCookie(w, identity.StateCookieName, signInCookiePath, true)

	nonce, err := r.Cookie(identity.StateCookieName)
	if err != nil || state.Nonce == "" || nonce.Value != state.Nonce {
		log.Warn().Msg("sign-in state does not match")
		h.failSignIn(w, r, state, identity.NewAuthError(identity.CategoryCancelled, "state mismatch"))
		return
	}

	if providerErr := q.Get("error"); providerErr != "" {
		detail := q.Get("error_description")
		if detail == "" {
			detail = providerErr
		}
		h.failSignIn(w, r, state, identity.NewAuthError(identity.CategoryCancelled, detail))
		return
	}

	user, err := h.services.IdentityService.Exchange(ctx, q.Get("code"))
	if err != nil {
		h.failSignIn(w, r, state, err)
		return
	}

	session, err := h.services.IdentityService.IssueSession(ctx, user)
	if err != nil {
		log.Err(err).Msg("error issuing session")
		h.failSignIn(w, r, state, identity.NewAuthError(identity.CategoryConfig, ""))
		return
	}
	visible, err := identity.EncodeUser(user)
	if err != nil {
		h.failSignIn(w, r, state, err)
		return
	}

	maxAge := int(identity.CookieMaxAge / time.Second)
	http.SetCookie(w, &http.Cookie{
		Name:     identity.UserCookieName,
		Value:    visible,
		Path:     "/",
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     identity.SessionCookieName,
		Value:    session,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, identity.SuccessURL(h.returnURL(state), user), http.StatusFound)
}

// me returns the visitor of the current session.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoSession)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, identity.UserCookieName, "/", false)
	h.clearCookie(w, identity.SessionCookieName, "/", true)

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

// failSignIn redirects back to the originating page with the error category
// of err. Errors other than *identity.AuthError count as generic failures.
func (h *Handler) failSignIn(w http.ResponseWriter, r *http.Request, state models.OAuthState, err error) {
	var authErr *identity.AuthError
	if !errors.As(err, &authErr) {
		logger.FromRequest(r).Err(err).Msg("sign-in failed")
		authErr = identity.NewAuthError(identity.CategoryCancelled, "")
	}

	logger.FromRequest(r).Warn().Str("reason", string(authErr.Category)).Msg("sign-in failed")
	http.Redirect(w, r, identity.ErrorURL(h.returnURL(state), authErr), http.StatusFound)
}

func (h *Handler) returnURL(state models.OAuthState) string {
	return h.publicURL + identity.ReturnPath(state)
}

func (h *Handler) clearCookie(w http.ResponseWriter, name, path string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: httpOnly,
		Secure:   httpOnly && h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
