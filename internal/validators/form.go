package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-site-forms/models"
)

// Field name constants used to scope form validation to a subset of rules.
// Without explicit fields every rule runs, in the order listed here, and the
// first failing rule wins.
const (
	// FieldPageKey targets the owning page key of a form.
	FieldPageKey = "page_key"

	// FieldSteps requires at least one step.
	FieldSteps = "steps"

	// FieldStepTitles requires a title in both locales on every step.
	FieldStepTitles = "step_titles"

	// FieldStepFields requires at least one field on every step.
	FieldStepFields = "step_fields"

	// FieldFieldTypes requires every field to have a supported type.
	FieldFieldTypes = "field_types"

	// FieldFieldTexts requires label and placeholder in both locales on every field.
	FieldFieldTexts = "field_texts"

	// FieldSelectOptions checks option presence, alignment and emptiness of select fields.
	FieldSelectOptions = "select_options"

	// FieldVersion targets the optimistic concurrency version of a save request.
	FieldVersion = "version"
)

var defaultStepRules = []string{
	FieldSteps,
	FieldStepTitles,
	FieldStepFields,
	FieldFieldTypes,
	FieldFieldTexts,
	FieldSelectOptions,
}

// FormValidator enforces the structural rules a form schema must satisfy
// before it can be saved.
type FormValidator struct{}

func NewFormValidator() Validator {
	return &FormValidator{}
}

func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Form:
		return v.validateForm(ctx, value, fields...)
	case *models.Form:
		return v.validateForm(ctx, *value, fields...)

	case models.SaveFormRequest:
		return v.validateSaveRequest(ctx, value, fields...)
	case *models.SaveFormRequest:
		return v.validateSaveRequest(ctx, *value, fields...)

	case []models.FormStep:
		return v.validateSteps(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *FormValidator) validateForm(ctx context.Context, form models.Form, fields ...string) error {
	if len(fields) == 0 {
		fields = append([]string{FieldPageKey}, defaultStepRules...)
	}

	stepRules := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case FieldPageKey:
			if strings.TrimSpace(form.PageKey) == "" {
				return ErrEmptyPageKey
			}
		case FieldVersion:
			if form.Version < 0 {
				return ErrInvalidVersion
			}
		default:
			stepRules = append(stepRules, f)
		}
	}
	if len(stepRules) == 0 {
		return nil
	}

	return v.validateSteps(ctx, form.Steps, stepRules...)
}

func (v *FormValidator) validateSaveRequest(ctx context.Context, request models.SaveFormRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = append([]string{FieldVersion}, defaultStepRules...)
	}

	stepRules := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == FieldVersion {
			if request.Version < 0 {
				return ErrInvalidVersion
			}
			continue
		}
		stepRules = append(stepRules, f)
	}
	if len(stepRules) == 0 {
		return nil
	}

	return v.validateSteps(ctx, request.Steps, stepRules...)
}

// validateSteps runs each rule over the whole step sequence before moving on
// to the next rule.
func (v *FormValidator) validateSteps(_ context.Context, steps []models.FormStep, fields ...string) error {
	if len(fields) == 0 {
		fields = defaultStepRules
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldSteps:
			if len(steps) == 0 {
				return ErrNoSteps
			}
		case FieldStepTitles:
			err = checkStepTitles(steps)
		case FieldStepFields:
			err = checkStepFields(steps)
		case FieldFieldTypes:
			err = eachField(steps, checkFieldType)
		case FieldFieldTexts:
			err = eachField(steps, checkFieldTexts)
		case FieldSelectOptions:
			err = eachField(steps, checkSelectOptions)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func checkStepTitles(steps []models.FormStep) error {
	for i, step := range steps {
		if isBlank(step.Title) {
			return fmt.Errorf("%w: step %d", ErrStepTitleRequired, i+1)
		}
		if isBlank(step.TitleHy) {
			return fmt.Errorf("%w: step %d", ErrStepTitleHyRequired, i+1)
		}
	}
	return nil
}

func checkStepFields(steps []models.FormStep) error {
	for i, step := range steps {
		if len(step.Fields) == 0 {
			return fmt.Errorf("%w: step %d", ErrStepHasNoFields, i+1)
		}
	}
	return nil
}

func eachField(steps []models.FormStep, check func(models.FormField) error) error {
	for i, step := range steps {
		for j, field := range step.Fields {
			if err := check(field); err != nil {
				return fmt.Errorf("%w: step %d, field %d", err, i+1, j+1)
			}
		}
	}
	return nil
}

func checkFieldType(field models.FormField) error {
	if !field.Type.IsValid() {
		return ErrInvalidFieldType
	}
	return nil
}

func checkFieldTexts(field models.FormField) error {
	switch {
	case isBlank(field.Label):
		return ErrFieldLabelRequired
	case isBlank(field.LabelHy):
		return ErrFieldLabelHyRequired
	case isBlank(field.Placeholder):
		return ErrFieldPlaceholderRequired
	case isBlank(field.PlaceholderHy):
		return ErrFieldPlaceholderHyRequired
	}
	return nil
}

func checkSelectOptions(field models.FormField) error {
	if field.Type != models.FieldSelect {
		return nil
	}
	if len(field.Options) == 0 {
		return ErrSelectHasNoOptions
	}
	if len(field.Options) != len(field.OptionsHy) {
		return ErrSelectOptionsLengthMismatch
	}
	for k := range field.Options {
		if isBlank(field.Options[k]) || isBlank(field.OptionsHy[k]) {
			return fmt.Errorf("%w: option %d", ErrSelectEmptyOption, k+1)
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
