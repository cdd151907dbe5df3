package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/MKhiriev/go-site-forms/internal/content"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// FormService owns the form schema of every page.
type FormService interface {
	GetForm(ctx context.Context, pageKey string) (models.Form, error)
	ListForms(ctx context.Context) ([]models.Form, error)

	// SaveForm replaces the steps of pageKey when request.Version is still
	// the stored version and returns the form as saved.
	SaveForm(ctx context.Context, pageKey string, request models.SaveFormRequest) (models.Form, error)
	DeleteForm(ctx context.Context, pageKey string) error
}

// SubmissionService records completed wizard runs.
type SubmissionService interface {
	Submit(ctx context.Context, pageKey string, data models.SubmissionData) (models.Submission, error)
	ListSubmissions(ctx context.Context, filter models.SubmissionFilter) (models.SubmissionsResponse, error)
}

// ContentService serves and edits the bilingual page content.
type ContentService interface {
	GetContent(ctx context.Context, pageKey string, l locale.Locale) (models.PageContent, error)
	GetFields(ctx context.Context, pageKey string, l locale.Locale) ([]content.EditableField, error)

	// SaveContent stores data as the document of l and re-derives the other
	// locale so both share one structure.
	SaveContent(ctx context.Context, pageKey string, l locale.Locale, data json.RawMessage) (models.PageContent, error)
	UpdateField(ctx context.Context, pageKey string, l locale.Locale, update models.ContentFieldUpdate) (models.PageContent, error)
}

// AuthService manages admin accounts and their bearer tokens.
type AuthService interface {
	RegisterAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	Login(ctx context.Context, admin models.Admin) (models.Admin, error)
	RegistrationOpen(ctx context.Context) (bool, error)

	CreateToken(ctx context.Context, admin models.Admin) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// IdentityService signs site visitors in with Google.
type IdentityService interface {
	// AuthCodeURL returns the provider URL a sign-in starts at.
	AuthCodeURL(ctx context.Context, state models.OAuthState) (string, error)

	// Exchange trades an authorization code for the visitor identity.
	// Failures are *identity.AuthError values.
	Exchange(ctx context.Context, code string) (models.GoogleUser, error)

	IssueSession(ctx context.Context, user models.GoogleUser) (string, error)
	ParseSession(ctx context.Context, token string) (models.GoogleUser, error)
}

// UploadService stores images referenced by page content.
type UploadService interface {
	Upload(ctx context.Context, filename string, r io.Reader) (models.UploadResponse, error)
}

// AppInfoService describes the running server to clients.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetServerInfo(ctx context.Context) models.ServerInfo
}
