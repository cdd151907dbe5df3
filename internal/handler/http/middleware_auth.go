package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/utils"
)

// adminAuth is an HTTP middleware that enforces JWT-based admin
// authentication.
//
// It extracts the bearer token of the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the admin ID in the request
// context under [utils.AdminIDCtxKey]. Requests without a valid token are
// answered with 401 Unauthorized.
func (h *Handler) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = context.WithValue(ctx, utils.AdminIDCtxKey, token.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// registrationAuth lets a request through without a token while no admin
// exists yet and requires admin auth afterwards.
func (h *Handler) registrationAuth(next http.Handler) http.Handler {
	authenticated := h.adminAuth(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		open, err := h.services.AuthService.RegistrationOpen(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if open {
			logger.FromRequest(r).Info().Msg("registering the first admin")
			next.ServeHTTP(w, r)
			return
		}

		authenticated.ServeHTTP(w, r)
	})
}

// withSessionUser attaches the visitor of a valid session cookie to the
// request context. Invalid or missing sessions leave the request anonymous.
func (h *Handler) withSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(identity.SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.IdentityService.ParseSession(ctx, cookie.Value)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("ignoring invalid session cookie")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSessionUser(ctx, user)))
	})
}
