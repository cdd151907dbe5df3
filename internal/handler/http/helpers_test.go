package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/mock"
	"github.com/MKhiriev/go-site-forms/internal/service"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testPublicURL  = "https://forms.example"
	testAdminToken = "admin-token"
)

type serviceMocks struct {
	forms       *mock.MockFormService
	submissions *mock.MockSubmissionService
	content     *mock.MockContentService
	auth        *mock.MockAuthService
	identity    *mock.MockIdentityService
	uploads     *mock.MockUploadService
	appInfo     *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, *serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		forms:       mock.NewMockFormService(ctrl),
		submissions: mock.NewMockSubmissionService(ctrl),
		content:     mock.NewMockContentService(ctrl),
		auth:        mock.NewMockAuthService(ctrl),
		identity:    mock.NewMockIdentityService(ctrl),
		uploads:     mock.NewMockUploadService(ctrl),
		appInfo:     mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		FormService:       m.forms,
		SubmissionService: m.submissions,
		ContentService:    m.content,
		AuthService:       m.auth,
		IdentityService:   m.identity,
		UploadService:     m.uploads,
		AppInfoService:    m.appInfo,
	}

	cfg := &config.StructuredConfig{
		Server:  config.Server{PublicURL: testPublicURL + "/"},
		Storage: config.Storage{Files: config.Files{UploadDir: t.TempDir()}},
	}
	return NewHandler(services, cfg, logger.Nop()), m
}

// expectAdmin accepts testAdminToken as the bearer token of admin 1.
func (m *serviceMocks) expectAdmin() {
	m.auth.EXPECT().ParseToken(gomock.Any(), testAdminToken).Return(models.Token{AdminID: 1}, nil)
}

func newRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func newAdminRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	req := newRequest(t, method, target, body)
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	return req
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// httpRecorder runs a single handler or middleware outside the router.
func httpRecorder(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
