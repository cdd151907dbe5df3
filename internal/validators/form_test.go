// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validField() models.FormField {
	return models.FormField{
		ID:            "f1",
		Type:          models.FieldInput,
		Label:         "Email",
		LabelHy:       "Էլ․փոստ",
		Placeholder:   "you@example.com",
		PlaceholderHy: "դուք@example.com",
		Required:      true,
	}
}

func validSelect() models.FormField {
	f := validField()
	f.ID = "f2"
	f.Type = models.FieldSelect
	f.Options = []string{"Yes", "No"}
	f.OptionsHy = []string{"Այո", "Ոչ"}
	return f
}

func validForm() models.Form {
	return models.Form{
		PageKey: "register",
		Steps: []models.FormStep{
			{
				ID:      "s1",
				Title:   "Contact",
				TitleHy: "Կոնտակտ",
				Fields:  []models.FormField{validField(), validSelect()},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestFormValidator_Dispatch(t *testing.T) {
	v := NewFormValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	})

	t.Run("form value and pointer", func(t *testing.T) {
		f := validForm()
		require.NoError(t, v.Validate(ctx, f))
		require.NoError(t, v.Validate(ctx, &f))
	})

	t.Run("save request", func(t *testing.T) {
		req := models.SaveFormRequest{Steps: validForm().Steps, Version: 3}
		require.NoError(t, v.Validate(ctx, req))
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("bare steps", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validForm().Steps))
	})

	t.Run("unknown rule", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validForm(), "nope"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// Structural rules
// ---------------------------------------------------------------------------

func TestFormValidator_Rules(t *testing.T) {
	v := NewFormValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(f *models.Form)
		wantErr error
	}{
		{
			name:    "empty page key",
			mutate:  func(f *models.Form) { f.PageKey = "  " },
			wantErr: ErrEmptyPageKey,
		},
		{
			name:    "no steps",
			mutate:  func(f *models.Form) { f.Steps = nil },
			wantErr: ErrNoSteps,
		},
		{
			name:    "blank title",
			mutate:  func(f *models.Form) { f.Steps[0].Title = " " },
			wantErr: ErrStepTitleRequired,
		},
		{
			name:    "missing armenian title",
			mutate:  func(f *models.Form) { f.Steps[0].TitleHy = "" },
			wantErr: ErrStepTitleHyRequired,
		},
		{
			name:    "step without fields",
			mutate:  func(f *models.Form) { f.Steps[0].Fields = nil },
			wantErr: ErrStepHasNoFields,
		},
		{
			name:    "unknown field type",
			mutate:  func(f *models.Form) { f.Steps[0].Fields[0].Type = "radio" },
			wantErr: ErrInvalidFieldType,
		},
		{
			name:    "missing label",
			mutate:  func(f *models.Form) { f.Steps[0].Fields[0].Label = "" },
			wantErr: ErrFieldLabelRequired,
		},
		{
			name:    "missing armenian label",
			mutate:  func(f *models.Form) { f.Steps[0].Fields[0].LabelHy = "\t" },
			wantErr: ErrFieldLabelHyRequired,
		},
		{
			name:    "missing placeholder",
			mutate:  func(f *models.Form) { f.Steps[0].Fields[1].Placeholder = "" },
			wantErr: ErrFieldPlaceholderRequired,
		},
		{
			name:    "missing armenian placeholder",
			mutate:  func(f *models.Form) { f.Steps[0].Fields[1].PlaceholderHy = "" },
			wantErr: ErrFieldPlaceholderHyRequired,
		},
		{
			name: "select without options",
			mutate: func(f *models.Form) {
				f.Steps[0].Fields[1].Options = nil
				f.Steps[0].Fields[1].OptionsHy = nil
			},
			wantErr: ErrSelectHasNoOptions,
		},
		{
			name:    "select options length mismatch",
			mutate:  func(f *models.Form) { f.Steps[0].Fields[1].OptionsHy = []string{"Այո"} },
			wantErr: ErrSelectOptionsLengthMismatch,
		},
		{
			name:    "whitespace option",
			mutate:  func(f *models.Form) { f.Steps[0].Fields[1].OptionsHy[1] = "   " },
			wantErr: ErrSelectEmptyOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			require.ErrorIs(t, v.Validate(ctx, f), tt.wantErr)
		})
	}
}

func TestFormValidator_MissingArmenianTitleRejected(t *testing.T) {
	steps := []models.FormStep{{
		ID:     "s1",
		Title:  "Info",
		Fields: []models.FormField{validField()},
	}}

	err := NewFormValidator().Validate(context.Background(), steps)
	require.ErrorIs(t, err, ErrStepTitleHyRequired)
	assert.Contains(t, err.Error(), "step 1")
}

func TestFormValidator_RuleOrderFirstFailureWins(t *testing.T) {
	// step 2 misses a title, step 1 misses its fields: titles are checked
	// across all steps before fields are.
	f := validForm()
	f.Steps[0].Fields = nil
	f.Steps = append(f.Steps, models.FormStep{ID: "s2", TitleHy: "Երկրորդ", Fields: []models.FormField{validField()}})

	err := NewFormValidator().Validate(context.Background(), f)
	require.ErrorIs(t, err, ErrStepTitleRequired)
	assert.Contains(t, err.Error(), "step 2")
}

func TestFormValidator_FieldPosition(t *testing.T) {
	f := validForm()
	f.Steps[0].Fields[1].LabelHy = ""

	err := NewFormValidator().Validate(context.Background(), f)
	require.ErrorIs(t, err, ErrFieldLabelHyRequired)
	assert.Contains(t, err.Error(), "step 1, field 2")
}

func TestFormValidator_Scoped(t *testing.T) {
	v := NewFormValidator()
	ctx := context.Background()

	f := validForm()
	f.Steps[0].Fields[0].Label = ""

	require.NoError(t, v.Validate(ctx, f, FieldSteps, FieldStepTitles))
	require.ErrorIs(t, v.Validate(ctx, f, FieldFieldTexts), ErrFieldLabelRequired)

	req := models.SaveFormRequest{Steps: validForm().Steps, Version: -1}
	require.ErrorIs(t, v.Validate(ctx, req), ErrInvalidVersion)
	require.NoError(t, v.Validate(ctx, req, FieldSteps))
}
