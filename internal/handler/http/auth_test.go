package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/service"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── POST /api/admin/login ────────────────────────────────────────────────────

func TestAdminLogin(t *testing.T) {
	h, m := newTestHandler(t)
	found := models.Admin{AdminID: 5, Login: "root"}

	m.auth.EXPECT().Login(gomock.Any(), models.Admin{Login: "root", Password: "long-password"}).Return(found, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), found).Return(models.Token{SignedString: "jwt"}, nil)

	rr := serve(h, newRequest(t, http.MethodPost, "/api/admin/login", `{"login":"root","password":"long-password"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer jwt", rr.Header().Get("Authorization"))
}

func TestAdminLogin_Errors(t *testing.T) {
	tests := []struct {
		name       string
		loginErr   error
		wantStatus int
		wantError  string
	}{
		{"wrong password", service.ErrWrongPassword, http.StatusUnauthorized, service.ErrWrongPassword.Error()},
		{"unknown login looks like a wrong password", fmt.Errorf("x: %w", store.ErrAdminNotFound), http.StatusUnauthorized, service.ErrWrongPassword.Error()},
		{"invalid data", service.ErrInvalidDataProvided, http.StatusBadRequest, service.ErrInvalidDataProvided.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Admin{}, tt.loginErr)

			rr := serve(h, newRequest(t, http.MethodPost, "/api/admin/login", `{"login":"root","password":"x"}`))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, decodeResponse[models.ErrorResponse](t, rr).Error)
			assert.Empty(t, rr.Header().Get("Authorization"))
		})
	}
}

func TestAdminLogin_UnknownFieldRejected(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, newRequest(t, http.MethodPost, "/api/admin/login", `{"login":"root","role":"owner"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ── POST /api/admin/register ─────────────────────────────────────────────────

func TestAdminRegister_FirstAdminNeedsNoToken(t *testing.T) {
	h, m := newTestHandler(t)
	registered := models.Admin{AdminID: 1, Login: "root"}

	m.auth.EXPECT().RegistrationOpen(gomock.Any()).Return(true, nil)
	m.auth.EXPECT().RegisterAdmin(gomock.Any(), gomock.Any()).Return(registered, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), registered).Return(models.Token{SignedString: "jwt"}, nil)

	rr := serve(h, newRequest(t, http.MethodPost, "/api/admin/register", `{"login":"root","password":"long-password"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer jwt", rr.Header().Get("Authorization"))
}

func TestAdminRegister_ClosedRequiresToken(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().RegistrationOpen(gomock.Any()).Return(false, nil)

	rr := serve(h, newRequest(t, http.MethodPost, "/api/admin/register", `{"login":"second","password":"long-password"}`))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminRegister_ByAdmin(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().RegistrationOpen(gomock.Any()).Return(false, nil)
	m.expectAdmin()
	m.auth.EXPECT().RegisterAdmin(gomock.Any(), gomock.Any()).Return(models.Admin{}, store.ErrLoginAlreadyExists)

	rr := serve(h, newAdminRequest(t, http.MethodPost, "/api/admin/register", `{"login":"root","password":"long-password"}`))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

// ── adminAuth ────────────────────────────────────────────────────────────────

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parseErr   error
		wantStatus int
		wantError  string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantError: ErrEmptyAuthorizationHeader.Error()},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantError: ErrInvalidAuthorizationHeader.Error()},
		{name: "token only", header: "abc", wantStatus: http.StatusUnauthorized, wantError: ErrInvalidAuthorizationHeader.Error()},
		{name: "expired token", header: "Bearer old", parseErr: service.ErrTokenIsExpiredOrInvalid, wantStatus: http.StatusUnauthorized, wantError: service.ErrTokenIsExpiredOrInvalid.Error()},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if token, ok := strings.CutPrefix(tt.header, "Bearer "); ok {
				m.auth.EXPECT().ParseToken(gomock.Any(), token).Return(models.Token{AdminID: 9}, tt.parseErr)
			}

			var adminID any
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				adminID = r.Context().Value(utils.AdminIDCtxKey)
				w.WriteHeader(http.StatusNoContent)
			})

			req := newRequest(t, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httpRecorder(h.adminAuth(next), req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeResponse[models.ErrorResponse](t, rr).Error)
				assert.Nil(t, adminID)
			} else {
				assert.Equal(t, int64(9), adminID)
			}
		})
	}
}

func TestRegistrationAuth_StoreFailure(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().RegistrationOpen(gomock.Any()).Return(false, store.ErrExecutingQuery)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})
	rr := httpRecorder(h.registrationAuth(next), newRequest(t, http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// ── withSessionUser ──────────────────────────────────────────────────────────

func TestWithSessionUser_InvalidSessionStaysAnonymous(t *testing.T) {
	h, m := newTestHandler(t)
	m.identity.EXPECT().ParseSession(gomock.Any(), "forged").Return(models.GoogleUser{}, service.ErrSessionInvalid)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := utils.GetSessionUserFromContext(r.Context())
		assert.False(t, ok)
	})

	req := newRequest(t, http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "forged"})
	httpRecorder(h.withSessionUser(next), req)

	assert.True(t, called)
}
