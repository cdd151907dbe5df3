package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-site-forms/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AdminRepository persists admin accounts.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	FindAdminByLogin(ctx context.Context, login string) (models.Admin, error)
	CountAdmins(ctx context.Context) (int64, error)
}

// FormRepository persists form schemas keyed by page key.
type FormRepository interface {
	GetForm(ctx context.Context, pageKey string) (models.Form, error)
	ListForms(ctx context.Context) ([]models.Form, error)
	// SaveForm creates or replaces the steps of a form. form.Version must be
	// the version the editor loaded (0 for a new form); the stored form with
	// its new version is returned.
	SaveForm(ctx context.Context, form models.Form) (models.Form, error)
	DeleteForm(ctx context.Context, pageKey string) error
}

// SubmissionRepository appends and lists submissions. Submissions are never
// updated.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission models.Submission) (models.Submission, error)
	ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
	CountSubmissions(ctx context.Context, pageKey string) (int64, error)
}

// ContentRepository persists localized page documents.
type ContentRepository interface {
	GetContent(ctx context.Context, pageKey, locale string) (models.PageContent, error)
	// UpdateContent runs update over the locked documents of pageKey and
	// upserts its result in the same transaction.
	UpdateContent(ctx context.Context, pageKey string, update ContentUpdate) error
}

// ContentUpdate receives the stored documents of a page keyed by locale and
// returns the documents to upsert.
type ContentUpdate func(docs map[string]models.PageContent) ([]models.PageContent, error)

// FileStorage keeps uploaded files on disk.
type FileStorage interface {
	// Save writes r under name and returns the public path of the file.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// Dir is the directory files are served from.
	Dir() string
}

// DraftRepository is the client-side store of unfinished wizard runs.
type DraftRepository interface {
	SaveDraft(ctx context.Context, draft models.Draft) error
	GetDraft(ctx context.Context, pageKey string) (models.Draft, error)
	DeleteDraft(ctx context.Context, pageKey string) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
