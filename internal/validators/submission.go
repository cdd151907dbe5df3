package validators

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-site-forms/models"
)

const (
	// FieldAnswerKeys requires every answer key to address an existing step and field.
	FieldAnswerKeys = "answer_keys"

	// FieldAnswerValues requires every answer to be a string matching its field type.
	FieldAnswerValues = "answer_values"

	// FieldRequiredAnswers requires a non-blank answer for every required field.
	FieldRequiredAnswers = "required_answers"
)

// FormAnswers pairs submitted answers with the form schema they claim to fill.
type FormAnswers struct {
	Form models.Form
	Data models.SubmissionData
}

// SubmissionValidator checks submitted answers against the current form schema.
type SubmissionValidator struct{}

func NewSubmissionValidator() Validator {
	return &SubmissionValidator{}
}

func (v *SubmissionValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case FormAnswers:
		return v.validateAnswers(ctx, value, fields...)
	case *FormAnswers:
		return v.validateAnswers(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *SubmissionValidator) validateAnswers(_ context.Context, answers FormAnswers, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAnswerKeys, FieldAnswerValues, FieldRequiredAnswers}
	}

	if len(answers.Data) == 0 {
		return ErrEmptySubmission
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldAnswerKeys:
			err = checkAnswerKeys(answers.Form, answers.Data)
		case FieldAnswerValues:
			err = checkAnswerValues(answers.Form, answers.Data)
		case FieldRequiredAnswers:
			err = checkRequiredAnswers(answers.Form, answers.Data)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func checkAnswerKeys(form models.Form, data models.SubmissionData) error {
	for stepKey, step := range data {
		i, ok := models.ParseStepKey(stepKey)
		if !ok || i >= len(form.Steps) {
			return fmt.Errorf("%w: %s", ErrUnknownAnswerKey, stepKey)
		}
		for fieldKey := range step {
			j, ok := models.ParseFieldKey(fieldKey)
			if !ok || j >= len(form.Steps[i].Fields) {
				return fmt.Errorf("%w: %s.%s", ErrUnknownAnswerKey, stepKey, fieldKey)
			}
		}
	}
	return nil
}

func checkAnswerValues(form models.Form, data models.SubmissionData) error {
	for i, step := range form.Steps {
		for j, field := range step.Fields {
			raw, ok := data.Answer(i, j)
			if !ok || raw == nil {
				continue
			}
			value, ok := raw.(string)
			if !ok {
				return fmt.Errorf("%w: %s", ErrInvalidAnswerType, models.FieldErrorKey(i, j))
			}
			if value == "" {
				continue
			}
			if err := checkAnswerValue(field, value); err != nil {
				return fmt.Errorf("%w: %s", err, models.FieldErrorKey(i, j))
			}
		}
	}
	return nil
}

func checkAnswerValue(field models.FormField, value string) error {
	switch field.Type {
	case models.FieldSelect:
		if !slices.Contains(field.Options, value) {
			return ErrAnswerNotAnOption
		}
	case models.FieldDate:
		date, err := time.Parse(models.DateLayout, value)
		if err != nil {
			return ErrAnswerInvalidDate
		}
		minDate, maxDate, err := field.DateBounds()
		if err != nil {
			return err
		}
		if (!minDate.IsZero() && date.Before(minDate)) || (!maxDate.IsZero() && date.After(maxDate)) {
			return ErrAnswerDateOutOfBounds
		}
	}
	return nil
}

func checkRequiredAnswers(form models.Form, data models.SubmissionData) error {
	for i, step := range form.Steps {
		for j, field := range step.Fields {
			if !field.Required {
				continue
			}
			raw, _ := data.Answer(i, j)
			value, _ := raw.(string)
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("%w: %s", ErrRequiredAnswerMissing, models.FieldErrorKey(i, j))
			}
		}
	}
	return nil
}
