package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/validators"
	"github.com/MKhiriev/go-site-forms/models"
)

// FormServiceWrapper adds behavior such as validation around a FormService.
// It stays out of interfaces.go: the generated mocks must not import service.
type FormServiceWrapper interface {
	Wrap(FormService) FormService
}

// FormValidationService rejects schemas that break the builder rules before
// they reach the wrapped FormService.
type FormValidationService struct {
	inner     FormService
	validator validators.Validator
}

func NewFormValidationService() FormServiceWrapper {
	return &FormValidationService{
		validator: validators.NewFormValidator(),
	}
}

func (v *FormValidationService) GetForm(ctx context.Context, pageKey string) (models.Form, error) {
	return v.inner.GetForm(ctx, pageKey)
}

func (v *FormValidationService) ListForms(ctx context.Context) ([]models.Form, error) {
	return v.inner.ListForms(ctx)
}

func (v *FormValidationService) SaveForm(ctx context.Context, pageKey string, request models.SaveFormRequest) (models.Form, error) {
	if !ValidPageKey(pageKey) {
		return models.Form{}, ErrInvalidPageKey
	}

	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrFormValidation, err)
	}

	return v.inner.SaveForm(ctx, pageKey, request)
}

func (v *FormValidationService) DeleteForm(ctx context.Context, pageKey string) error {
	return v.inner.DeleteForm(ctx, pageKey)
}

func (v *FormValidationService) Wrap(inner FormService) FormService {
	v.inner = inner
	return v
}
