package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGoogleStub serves the token and user-info endpoints of the provider.
func newGoogleStub(t *testing.T, profile string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Bad Request"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"access-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(profile))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestIdentityCfg(baseURL string) *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{TokenSignKey: "secret", TokenIssuer: "go-site-forms"},
		Server: config.Server{
			PublicURL:      "https://forms.example",
			RequestTimeout: 5 * time.Second,
		},
		OAuth: config.OAuth{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			AuthURL:      baseURL + "/auth",
			TokenURL:     baseURL + "/token",
			UserInfoURL:  baseURL + "/userinfo",
		},
	}
}

func requireAuthError(t *testing.T, err error, category identity.Category) *identity.AuthError {
	t.Helper()
	var authErr *identity.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, category, authErr.Category)
	return authErr
}

// ── AuthCodeURL ──────────────────────────────────────────────────────────────

func TestIdentityService_AuthCodeURL(t *testing.T) {
	svc := NewIdentityService(newTestIdentityCfg("https://accounts.example"), logger.Nop())

	raw, err := svc.AuthCodeURL(context.Background(), models.OAuthState{Locale: "hy", PageKey: "contact", Nonce: "n1"})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.example", u.Host)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.Equal(t, "https://forms.example/auth/google/callback", u.Query().Get("redirect_uri"))
	assert.Equal(t, "openid email profile", u.Query().Get("scope"))

	state := identity.DecodeState(u.Query().Get("state"))
	assert.Equal(t, models.OAuthState{Locale: "hy", PageKey: "contact", Nonce: "n1"}, state)
}

func TestIdentityService_NotConfigured(t *testing.T) {
	cfg := newTestIdentityCfg("https://accounts.example")
	cfg.OAuth.ClientSecret = ""
	svc := NewIdentityService(cfg, logger.Nop())

	_, err := svc.AuthCodeURL(context.Background(), models.OAuthState{})
	requireAuthError(t, err, identity.CategoryConfig)

	_, err = svc.Exchange(context.Background(), "good-code")
	requireAuthError(t, err, identity.CategoryConfig)
}

// ── Exchange ─────────────────────────────────────────────────────────────────

func TestIdentityService_Exchange(t *testing.T) {
	srv := newGoogleStub(t, `{"email":"ani@example.am","name":"Ani","picture":"https://img/ani.png"}`)
	svc := NewIdentityService(newTestIdentityCfg(srv.URL), logger.Nop())

	user, err := svc.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, models.GoogleUser{Email: "ani@example.am", Name: "Ani", Picture: "https://img/ani.png"}, user)
}

func TestIdentityService_Exchange_NoCode(t *testing.T) {
	svc := NewIdentityService(newTestIdentityCfg("https://accounts.example"), logger.Nop())

	_, err := svc.Exchange(context.Background(), "  ")
	requireAuthError(t, err, identity.CategoryNoCode)
}

func TestIdentityService_Exchange_RejectedCode(t *testing.T) {
	srv := newGoogleStub(t, `{}`)
	svc := NewIdentityService(newTestIdentityCfg(srv.URL), logger.Nop())

	_, err := svc.Exchange(context.Background(), "bad-code")
	authErr := requireAuthError(t, err, identity.CategoryTokenExchange)
	assert.Equal(t, "Bad Request", authErr.Detail)
}

func TestIdentityService_Exchange_ProfileWithoutEmail(t *testing.T) {
	srv := newGoogleStub(t, `{"name":"Ani"}`)
	svc := NewIdentityService(newTestIdentityCfg(srv.URL), logger.Nop())

	_, err := svc.Exchange(context.Background(), "good-code")
	requireAuthError(t, err, identity.CategoryTokenExchange)
}

// ── Sessions ─────────────────────────────────────────────────────────────────

func TestIdentityService_SessionRoundTrip(t *testing.T) {
	svc := NewIdentityService(newTestIdentityCfg("https://accounts.example"), logger.Nop())
	ctx := context.Background()
	user := models.GoogleUser{Email: "ani@example.am", Name: "Ani"}

	token, err := svc.IssueSession(ctx, user)
	require.NoError(t, err)

	parsed, err := svc.ParseSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user, parsed)

	_, err = svc.ParseSession(ctx, token[:len(token)-2])
	require.ErrorIs(t, err, ErrSessionInvalid)

	_, err = svc.ParseSession(ctx, "")
	require.ErrorIs(t, err, ErrSessionInvalid)
}

func TestIdentityService_ParseSession_OtherKey(t *testing.T) {
	cfg := newTestIdentityCfg("https://accounts.example")
	issuer := NewIdentityService(cfg, logger.Nop())

	token, err := issuer.IssueSession(context.Background(), models.GoogleUser{Email: "ani@example.am"})
	require.NoError(t, err)

	cfg.App.SessionSignKey = "rotated"
	verifier := NewIdentityService(cfg, logger.Nop())
	_, err = verifier.ParseSession(context.Background(), token)
	require.ErrorIs(t, err, ErrSessionInvalid)
}
