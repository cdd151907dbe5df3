// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"slices"
	"time"
)

// FieldType defines which input widget renders a [FormField] and how its
// answer is normalised.
type FieldType string

const (
	// FieldInput is a single-line text input. The answer is stored verbatim.
	FieldInput FieldType = "input"

	// FieldTextarea is a multi-line text input. The answer is stored verbatim.
	FieldTextarea FieldType = "textarea"

	// FieldSelect is an enumerated choice over the field options.
	// The answer is the base-locale option string.
	FieldSelect FieldType = "select"

	// FieldDate is a calendar picker producing a "mm/dd/yyyy" string.
	FieldDate FieldType = "date"
)

// IsValid reports whether t is one of the supported field types.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldInput, FieldTextarea, FieldSelect, FieldDate:
		return true
	}
	return false
}

// FormField is a single question inside a [FormStep].
//
// Every bilingual pair (Label/LabelHy, Placeholder/PlaceholderHy,
// Options/OptionsHy) follows the same display rule: the Armenian value is
// shown only when the active locale is Armenian and the value is non-empty.
type FormField struct {
	// ID is an opaque identifier, unique within the parent step.
	ID string `json:"id"`

	// Type selects the input widget.
	Type FieldType `json:"type"`

	Label         string `json:"label"`
	LabelHy       string `json:"labelHy,omitempty"`
	Placeholder   string `json:"placeholder,omitempty"`
	PlaceholderHy string `json:"placeholderHy,omitempty"`

	// Required gates step-level validation in the wizard.
	Required bool `json:"required"`

	// Options and OptionsHy are parallel arrays, present only for select
	// fields. Option i of one is the translation of option i of the other.
	Options   []string `json:"options,omitempty"`
	OptionsHy []string `json:"optionsHy,omitempty"`

	// MinDate and MaxDate optionally bound a date field ("mm/dd/yyyy").
	MinDate string `json:"minDate,omitempty"`
	MaxDate string `json:"maxDate,omitempty"`
}

// FormStep is one page of the wizard. The order of Fields is the rendering
// and navigation order.
type FormStep struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	TitleHy string      `json:"titleHy,omitempty"`
	Fields  []FormField `json:"fields"`
}

// Form is the multi-step form schema owned by a single page.
// There is at most one Form per PageKey.
type Form struct {
	// ID is the storage identifier. Submissions reference it weakly.
	ID int64 `json:"id"`

	// PageKey identifies the page that owns this form.
	PageKey string `json:"pageKey"`

	// Steps is the ordered sequence of steps. An empty sequence means that
	// no form is configured for the page.
	Steps []FormStep `json:"steps"`

	// Version is incremented on every successful save and is used for
	// optimistic concurrency control between concurrent editors.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEmpty reports whether the form has no steps configured.
func (f Form) IsEmpty() bool {
	return len(f.Steps) == 0
}

// FieldCount returns the total number of fields across all steps.
func (f Form) FieldCount() int {
	n := 0
	for _, step := range f.Steps {
		n += len(step.Fields)
	}
	return n
}

// DateLayout is the normalized layout of date answers and date bounds.
const DateLayout = "01/02/2006"

// DateLayoutHint is DateLayout as shown to users.
const DateLayoutHint = "mm/dd/yyyy"

// DateBounds parses the optional MinDate/MaxDate of a date field.
// A zero time means the bound is not configured.
func (f FormField) DateBounds() (minDate, maxDate time.Time, err error) {
	if f.MinDate != "" {
		if minDate, err = time.Parse(DateLayout, f.MinDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid min date %q: %w", f.MinDate, err)
		}
	}
	if f.MaxDate != "" {
		if maxDate, err = time.Parse(DateLayout, f.MaxDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid max date %q: %w", f.MaxDate, err)
		}
	}
	return minDate, maxDate, nil
}

// StepKey returns the positional answer key of the step at index i.
func StepKey(i int) string {
	return fmt.Sprintf("step_%d", i)
}

// FieldKey returns the positional answer key of the field at index j.
func FieldKey(j int) string {
	return fmt.Sprintf("field_%d", j)
}

// FieldErrorKey returns the flat key under which a field validation error
// is reported, e.g. "step_0_field_2".
func FieldErrorKey(i, j int) string {
	return fmt.Sprintf("step_%d_field_%d", i, j)
}

// CloneSteps returns a deep copy of steps.
func CloneSteps(steps []FormStep) []FormStep {
	if steps == nil {
		return nil
	}
	out := make([]FormStep, len(steps))
	for i, step := range steps {
		out[i] = step
		out[i].Fields = make([]FormField, len(step.Fields))
		for j, field := range step.Fields {
			out[i].Fields[j] = field
			out[i].Fields[j].Options = slices.Clone(field.Options)
			out[i].Fields[j].OptionsHy = slices.Clone(field.OptionsHy)
		}
	}
	return out
}
