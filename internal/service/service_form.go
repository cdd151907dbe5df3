// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/models"
)

// pageKeyPattern matches the page keys used in site routes ("contact",
// "register", "services-web").
var pageKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidPageKey reports whether pageKey can name a page.
func ValidPageKey(pageKey string) bool {
	return pageKeyPattern.MatchString(pageKey)
}

type formService struct {
	formRepository store.FormRepository

	logger *logger.Logger
}

func NewFormService(formRepository store.FormRepository, logger *logger.Logger) FormService {
	return &formService{
		formRepository: formRepository,
		logger:         logger,
	}
}

// GetForm returns the schema of pageKey. A stored form without steps counts
// as not configured.
func (f *formService) GetForm(ctx context.Context, pageKey string) (models.Form, error) {
	if !ValidPageKey(pageKey) {
		return models.Form{}, ErrInvalidPageKey
	}

	form, err := f.formRepository.GetForm(ctx, pageKey)
	if err != nil {
		return models.Form{}, fmt.Errorf("error getting form: %w", err)
	}
	if form.IsEmpty() {
		return models.Form{}, store.ErrFormNotFound
	}

	return form, nil
}

func (f *formService) ListForms(ctx context.Context) ([]models.Form, error) {
	return f.formRepository.ListForms(ctx)
}

func (f *formService) SaveForm(ctx context.Context, pageKey string, request models.SaveFormRequest) (models.Form, error) {
	log := logger.FromContext(ctx).WithPage(pageKey)

	saved, err := f.formRepository.SaveForm(ctx, models.Form{
		PageKey: pageKey,
		Steps:   request.Steps,
		Version: request.Version,
	})
	if err != nil {
		log.Err(err).Int64("version", request.Version).Msg("form save failed")
		return models.Form{}, fmt.Errorf("error saving form: %w", err)
	}

	return saved, nil
}

func (f *formService) DeleteForm(ctx context.Context, pageKey string) error {
	if !ValidPageKey(pageKey) {
		return ErrInvalidPageKey
	}

	if err := f.formRepository.DeleteForm(ctx, pageKey); err != nil {
		return fmt.Errorf("error deleting form: %w", err)
	}

	logger.FromContext(ctx).WithPage(pageKey).Info().Msg("form deleted")
	return nil
}
