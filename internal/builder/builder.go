// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package builder implements admin authoring of a form schema.
//
// A Builder holds the editable step sequence of one page. Every mutation
// works on step and field ids; nothing is persisted until Save succeeds,
// and Save runs the structural validation first so that an invalid schema
// never reaches the server.
//
// Select option arrays are kept aligned: AddOption and DeleteOption touch
// both locales in lockstep, and UpdateOption pads both arrays to a common
// length before writing.
//
// A Builder is owned by a single editor and is not safe for concurrent use.
package builder

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/validators"
	"github.com/MKhiriev/go-site-forms/models"
)

// SchemaSaver persists the whole step sequence of a page.
// It returns the version the stored form has after the save.
type SchemaSaver interface {
	SaveForm(ctx context.Context, pageKey string, request models.SaveFormRequest) (int64, error)
}

// IDGenerator produces opaque step and field identifiers.
type IDGenerator interface {
	Generate() string
}

// StepPatch holds partial step changes. Nil members are left unchanged.
type StepPatch struct {
	Title   *string
	TitleHy *string
}

// FieldPatch holds partial field changes. Nil members are left unchanged.
type FieldPatch struct {
	Type          *models.FieldType
	Label         *string
	LabelHy       *string
	Placeholder   *string
	PlaceholderHy *string
	Required      *bool
	MinDate       *string
	MaxDate       *string
}

type Builder struct {
	pageKey   string
	version   int64
	steps     []models.FormStep
	ids       IDGenerator
	validator validators.Validator
	saver     SchemaSaver
}

// Option configures a Builder.
type Option func(*Builder)

// WithValidator replaces the default structural validator.
func WithValidator(v validators.Validator) Option {
	return func(b *Builder) { b.validator = v }
}

// WithIDGenerator replaces the default id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(b *Builder) { b.ids = g }
}

// New returns a Builder for a page without a stored form.
func New(pageKey string, ids IDGenerator, saver SchemaSaver, opts ...Option) *Builder {
	b := &Builder{
		pageKey:   pageKey,
		steps:     []models.FormStep{},
		ids:       ids,
		validator: validators.NewFormValidator(),
		saver:     saver,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromForm returns a Builder that edits a copy of a loaded form.
// The form version is kept and sent back on Save.
func FromForm(form models.Form, ids IDGenerator, saver SchemaSaver, opts ...Option) *Builder {
	b := New(form.PageKey, ids, saver, opts...)
	b.version = form.Version
	if form.Steps != nil {
		b.steps = models.CloneSteps(form.Steps)
	}
	return b
}

func (b *Builder) PageKey() string {
	return b.pageKey
}

// Version returns the stored version the current edits are based on.
func (b *Builder) Version() int64 {
	return b.version
}

// Steps returns a copy of the current step sequence.
func (b *Builder) Steps() []models.FormStep {
	return models.CloneSteps(b.steps)
}

// Form returns a copy of the schema being edited.
func (b *Builder) Form() models.Form {
	return models.Form{PageKey: b.pageKey, Steps: b.Steps(), Version: b.version}
}

// AddStep appends an empty step and returns its id.
func (b *Builder) AddStep() string {
	id := b.ids.Generate()
	b.steps = append(b.steps, models.FormStep{ID: id, Fields: []models.FormField{}})
	return id
}

func (b *Builder) DeleteStep(stepID string) error {
	i, err := b.stepIndex(stepID)
	if err != nil {
		return err
	}
	b.steps = slices.Delete(b.steps, i, i+1)
	return nil
}

func (b *Builder) UpdateStep(stepID string, patch StepPatch) error {
	i, err := b.stepIndex(stepID)
	if err != nil {
		return err
	}

	step := &b.steps[i]
	if patch.Title != nil {
		step.Title = *patch.Title
	}
	if patch.TitleHy != nil {
		step.TitleHy = *patch.TitleHy
	}
	return nil
}

// AddField appends an optional input field to a step and returns its id.
func (b *Builder) AddField(stepID string) (string, error) {
	i, err := b.stepIndex(stepID)
	if err != nil {
		return "", err
	}

	id := b.ids.Generate()
	b.steps[i].Fields = append(b.steps[i].Fields, models.FormField{ID: id, Type: models.FieldInput})
	return id, nil
}

func (b *Builder) DeleteField(stepID, fieldID string) error {
	i, j, err := b.fieldIndex(stepID, fieldID)
	if err != nil {
		return err
	}
	b.steps[i].Fields = slices.Delete(b.steps[i].Fields, j, j+1)
	return nil
}

// UpdateField merges patch into a field. Switching the type to select starts
// with empty option arrays; switching away from select discards the options.
func (b *Builder) UpdateField(stepID, fieldID string, patch FieldPatch) error {
	i, j, err := b.fieldIndex(stepID, fieldID)
	if err != nil {
		return err
	}

	field := &b.steps[i].Fields[j]
	if patch.Type != nil && *patch.Type != field.Type {
		if !patch.Type.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidFieldType, *patch.Type)
		}
		if *patch.Type == models.FieldSelect {
			field.Options = []string{}
			field.OptionsHy = []string{}
		} else {
			field.Options = nil
			field.OptionsHy = nil
		}
		if *patch.Type != models.FieldDate {
			field.MinDate = ""
			field.MaxDate = ""
		}
		field.Type = *patch.Type
	}

	setIfPresent(&field.Label, patch.Label)
	setIfPresent(&field.LabelHy, patch.LabelHy)
	setIfPresent(&field.Placeholder, patch.Placeholder)
	setIfPresent(&field.PlaceholderHy, patch.PlaceholderHy)
	setIfPresent(&field.MinDate, patch.MinDate)
	setIfPresent(&field.MaxDate, patch.MaxDate)
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	return nil
}

// AddOption appends an empty option to both locales of a select field.
func (b *Builder) AddOption(stepID, fieldID string) error {
	field, err := b.selectField(stepID, fieldID)
	if err != nil {
		return err
	}

	alignOptions(field, 0)
	field.Options = append(field.Options, "")
	field.OptionsHy = append(field.OptionsHy, "")
	return nil
}

// UpdateOption writes value at index of the option array of locale l.
// Both arrays are first padded with empty strings to a common length that
// covers index.
func (b *Builder) UpdateOption(stepID, fieldID string, index int, value string, l locale.Locale) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrOptionOutOfRange, index)
	}
	if !locale.IsSupported(string(l)) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, l)
	}

	field, err := b.selectField(stepID, fieldID)
	if err != nil {
		return err
	}

	alignOptions(field, index+1)
	if l.IsSecondary() {
		field.OptionsHy[index] = value
	} else {
		field.Options[index] = value
	}
	return nil
}

// DeleteOption removes index from both option arrays.
func (b *Builder) DeleteOption(stepID, fieldID string, index int) error {
	field, err := b.selectField(stepID, fieldID)
	if err != nil {
		return err
	}

	alignOptions(field, 0)
	if index < 0 || index >= len(field.Options) {
		return fmt.Errorf("%w: %d", ErrOptionOutOfRange, index)
	}
	field.Options = slices.Delete(field.Options, index, index+1)
	field.OptionsHy = slices.Delete(field.OptionsHy, index, index+1)
	return nil
}

// Validate runs the structural rules over the current schema.
func (b *Builder) Validate(ctx context.Context) error {
	return b.validator.Validate(ctx, models.SaveFormRequest{Steps: b.steps, Version: b.version})
}

// Save validates the schema and, only when it is valid, persists it.
// On success the builder moves to the version returned by the saver.
func (b *Builder) Save(ctx context.Context) error {
	if err := b.Validate(ctx); err != nil {
		return err
	}
	if b.saver == nil {
		return ErrNoSaver
	}

	version, err := b.saver.SaveForm(ctx, b.pageKey, models.SaveFormRequest{
		Steps:   b.Steps(),
		Version: b.version,
	})
	if err != nil {
		return fmt.Errorf("error saving form %q: %w", b.pageKey, err)
	}

	b.version = version
	return nil
}

func (b *Builder) stepIndex(stepID string) (int, error) {
	i := slices.IndexFunc(b.steps, func(s models.FormStep) bool { return s.ID == stepID })
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrStepNotFound, stepID)
	}
	return i, nil
}

func (b *Builder) fieldIndex(stepID, fieldID string) (int, int, error) {
	i, err := b.stepIndex(stepID)
	if err != nil {
		return 0, 0, err
	}
	j := slices.IndexFunc(b.steps[i].Fields, func(f models.FormField) bool { return f.ID == fieldID })
	if j < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrFieldNotFound, fieldID)
	}
	return i, j, nil
}

func (b *Builder) selectField(stepID, fieldID string) (*models.FormField, error) {
	i, j, err := b.fieldIndex(stepID, fieldID)
	if err != nil {
		return nil, err
	}
	field := &b.steps[i].Fields[j]
	if field.Type != models.FieldSelect {
		return nil, fmt.Errorf("%w: %q", ErrNotSelectField, fieldID)
	}
	return field, nil
}

// alignOptions pads both option arrays with empty strings up to the longer
// of the two, and at least to n.
func alignOptions(field *models.FormField, n int) {
	n = max(n, len(field.Options), len(field.OptionsHy))
	for len(field.Options) < n {
		field.Options = append(field.Options, "")
	}
	for len(field.OptionsHy) < n {
		field.OptionsHy = append(field.OptionsHy, "")
	}
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
