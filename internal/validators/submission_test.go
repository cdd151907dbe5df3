package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/require"
)

func datedForm() models.Form {
	f := validForm()
	f.Steps = append(f.Steps, models.FormStep{
		ID:      "s2",
		Title:   "When",
		TitleHy: "Երբ",
		Fields: []models.FormField{{
			ID:            "d1",
			Type:          models.FieldDate,
			Label:         "Date",
			LabelHy:       "Ամսաթիվ",
			Placeholder:   "mm/dd/yyyy",
			PlaceholderHy: "ամիս/օր/տարի",
			MinDate:       "01/01/2026",
			MaxDate:       "12/31/2026",
		}},
	})
	return f
}

func validAnswers() models.SubmissionData {
	return models.SubmissionData{
		"step_0": {"field_0": "a@b.com", "field_1": "Yes"},
		"step_1": {"field_0": "03/15/2026"},
	}
}

func TestSubmissionValidator(t *testing.T) {
	v := NewSubmissionValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		data    models.SubmissionData
		wantErr error
	}{
		{
			name: "valid",
			data: validAnswers(),
		},
		{
			name:    "empty",
			data:    models.SubmissionData{},
			wantErr: ErrEmptySubmission,
		},
		{
			name: "unknown step",
			data: models.SubmissionData{
				"step_0": {"field_0": "a@b.com", "field_1": "Yes"},
				"step_7": {"field_0": "x"},
			},
			wantErr: ErrUnknownAnswerKey,
		},
		{
			name: "non canonical key",
			data: models.SubmissionData{
				"step_00": {"field_0": "a@b.com"},
			},
			wantErr: ErrUnknownAnswerKey,
		},
		{
			name: "unknown field",
			data: models.SubmissionData{
				"step_0": {"field_0": "a@b.com", "field_1": "Yes", "field_9": "x"},
			},
			wantErr: ErrUnknownAnswerKey,
		},
		{
			name: "non string answer",
			data: models.SubmissionData{
				"step_0": {"field_0": 42, "field_1": "Yes"},
			},
			wantErr: ErrInvalidAnswerType,
		},
		{
			name: "translated option is not a value",
			data: models.SubmissionData{
				"step_0": {"field_0": "a@b.com", "field_1": "Այո"},
			},
			wantErr: ErrAnswerNotAnOption,
		},
		{
			name: "malformed date",
			data: models.SubmissionData{
				"step_0": {"field_0": "a@b.com", "field_1": "No"},
				"step_1": {"field_0": "2026-03-15"},
			},
			wantErr: ErrAnswerInvalidDate,
		},
		{
			name: "date out of bounds",
			data: models.SubmissionData{
				"step_0": {"field_0": "a@b.com", "field_1": "No"},
				"step_1": {"field_0": "01/01/2027"},
			},
			wantErr: ErrAnswerDateOutOfBounds,
		},
		{
			name: "whitespace required answer",
			data: models.SubmissionData{
				"step_0": {"field_0": "   ", "field_1": "No"},
			},
			wantErr: ErrRequiredAnswerMissing,
		},
		{
			name: "missing required answer",
			data: models.SubmissionData{
				"step_0": {"field_0": "a@b.com"},
			},
			wantErr: ErrRequiredAnswerMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, FormAnswers{Form: datedForm(), Data: tt.data})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmissionValidator_Dispatch(t *testing.T) {
	v := NewSubmissionValidator()
	ctx := context.Background()

	require.ErrorIs(t, v.Validate(ctx, validAnswers()), ErrUnsupportedType)
	require.NoError(t, v.Validate(ctx, &FormAnswers{Form: datedForm(), Data: validAnswers()}))
	require.ErrorIs(t, v.Validate(ctx, FormAnswers{Form: datedForm(), Data: validAnswers()}, "nope"), ErrUnknownField)
}

func TestSubmissionValidator_OptionalEmptyAnswerAccepted(t *testing.T) {
	data := validAnswers()
	data["step_1"]["field_0"] = ""

	err := NewSubmissionValidator().Validate(context.Background(), FormAnswers{Form: datedForm(), Data: data})
	require.NoError(t, err)
}
