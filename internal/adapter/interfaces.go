// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the terminal client's view of the site forms API.
//
// [ServerAdapter] serves as the form source, content source and submission
// sink of a wizard and as the schema saver of a builder. Non-2xx responses
// map to the errors in errors.go so callers can use [errors.Is] (e.g.
// [ErrConflict] for a stale schema version, [ErrNotFound] for a page without
// a form).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

type ServerAdapter interface {
	// SetToken stores the admin bearer token attached to admin requests.
	SetToken(token string)
	Token() string

	// SetSession stores the visitor session cookie value so submissions are
	// attributed to the signed-in user.
	SetSession(value string)

	// Login signs an admin in and stores the returned token.
	Login(ctx context.Context, admin models.Admin) error

	GetForm(ctx context.Context, pageKey string) (models.Form, error)
	ListForms(ctx context.Context) ([]models.Form, error)

	// SaveForm replaces the steps of a page and returns the new version.
	// A stale request.Version fails with [ErrConflict].
	SaveForm(ctx context.Context, pageKey string, request models.SaveFormRequest) (int64, error)
	Submit(ctx context.Context, pageKey string, data models.SubmissionData) error

	// GetContent fetches the content of a page in l.
	GetContent(ctx context.Context, pageKey string, l locale.Locale) (models.PageContent, error)

	// SignInURL returns the server URL that starts Google sign-in for a page.
	SignInURL(pageKey string, l locale.Locale) string

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
