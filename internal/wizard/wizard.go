// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package wizard drives a user through a form schema one step at a time.
//
// A Wizard moves through the states Loading, Ready, Submitting and Submitted,
// or ends in NotFound when the page has no form. Answers are kept for every
// field of every step under the positional key "step_<i>.field_<j>" and are
// posted as a nested step/field mapping when the last step is completed.
//
// Only the current step is validated when moving forward; moving back never
// validates. While a submission is outstanding further submit attempts fail
// with ErrSubmitInProgress and issue no request.
//
// All methods are safe for concurrent use, so a UI may run Next in the
// background and keep rendering from the same Wizard.
package wizard

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
	"golang.org/x/sync/errgroup"
)

// FormSource fetches the schema of a page.
type FormSource interface {
	GetForm(ctx context.Context, pageKey string) (models.Form, error)
}

// ContentSource fetches the localized content of a page.
type ContentSource interface {
	GetContent(ctx context.Context, pageKey string, l locale.Locale) (models.PageContent, error)
}

// SubmissionSink accepts a completed answer payload.
type SubmissionSink interface {
	Submit(ctx context.Context, pageKey string, data models.SubmissionData) error
}

// State is the lifecycle state of a Wizard.
type State int

const (
	StateLoading State = iota
	StateReady
	StateNotFound
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateNotFound:
		return "not_found"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// SubmitErrorKey is the error key of a failed submission.
const SubmitErrorKey = "submit"

// AnswerKey returns the key of the answer for field j of step i.
func AnswerKey(i, j int) string {
	return models.StepKey(i) + "." + models.FieldKey(j)
}

type Wizard struct {
	mu sync.Mutex

	pageKey string
	locale  locale.Locale

	forms   FormSource
	content ContentSource
	sink    SubmissionSink

	state       State
	form        models.Form
	page        *models.PageContent
	current     int
	answers     map[string]string
	fieldErrors map[string]string
	submitting  bool
}

// New returns a Wizard for pageKey in the Loading state.
// content may be nil when the view renders no page content.
func New(pageKey string, l locale.Locale, forms FormSource, content ContentSource, sink SubmissionSink) *Wizard {
	return &Wizard{
		pageKey:     pageKey,
		locale:      l,
		forms:       forms,
		content:     content,
		sink:        sink,
		state:       StateLoading,
		answers:     map[string]string{},
		fieldErrors: map[string]string{},
	}
}

// Load fetches the schema and the page content concurrently and waits for
// both. A missing, empty or failed schema ends in NotFound; a failed content
// fetch only leaves the content empty.
//
// Loading resets navigation, answers and errors, so loading the same schema
// twice yields the same answer keys, each set to "".
func (w *Wizard) Load(ctx context.Context) error {
	w.mu.Lock()
	w.state = StateLoading
	w.mu.Unlock()

	var (
		form    models.Form
		formErr error
		page    *models.PageContent
	)

	var g errgroup.Group
	g.Go(func() error {
		form, formErr = w.forms.GetForm(ctx, w.pageKey)
		return nil
	})
	if w.content != nil {
		g.Go(func() error {
			c, err := w.content.GetContent(ctx, w.pageKey, w.locale)
			if err != nil {
				logger.FromContext(ctx).Warn().Err(err).Str("page_key", w.pageKey).Msg("page content unavailable")
				return nil
			}
			page = &c
			return nil
		})
	}
	_ = g.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.page = page
	w.current = 0
	w.submitting = false
	w.fieldErrors = map[string]string{}
	w.answers = map[string]string{}

	if formErr != nil || form.IsEmpty() {
		w.form = models.Form{}
		w.state = StateNotFound
		if formErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrFormNotFound, w.pageKey, formErr)
		}
		return fmt.Errorf("%w: %s", ErrFormNotFound, w.pageKey)
	}

	w.form = form
	for i, step := range form.Steps {
		for j := range step.Fields {
			w.answers[AnswerKey(i, j)] = ""
		}
	}
	w.state = StateReady
	return nil
}

// Restore copies saved answers into the loaded form and moves to step.
// Answers that do not address a field of the form are ignored.
func (w *Wizard) Restore(data models.SubmissionData, step int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateReady {
		return ErrNotReady
	}
	for i, s := range w.form.Steps {
		for j := range s.Fields {
			if raw, ok := data.Answer(i, j); ok {
				if v, ok := raw.(string); ok {
					w.answers[AnswerKey(i, j)] = v
				}
			}
		}
	}
	w.current = min(max(step, 0), len(w.form.Steps)-1)
	return nil
}

// SetAnswer stores value verbatim for field j of the current step. A changed
// value clears the existing error of that field. It accepts input and textarea fields.
func (w *Wizard) SetAnswer(j int, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	field, err := w.currentField(j)
	if err != nil {
		return err
	}
	if field.Type != models.FieldInput && field.Type != models.FieldTextarea {
		return fmt.Errorf("%w: %s field", ErrWrongFieldType, field.Type)
	}

	w.setAnswer(j, value)
	return nil
}

// SelectOption chooses option index of select field j of the current step.
// The stored answer is always the base-locale option, whatever the locale
// the option was displayed in.
func (w *Wizard) SelectOption(j, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	field, err := w.currentField(j)
	if err != nil {
		return err
	}
	if field.Type != models.FieldSelect {
		return fmt.Errorf("%w: %s field", ErrWrongFieldType, field.Type)
	}
	if index < 0 || index >= len(field.Options) {
		return fmt.Errorf("%w: %d", ErrOptionOutOfRange, index)
	}

	w.setAnswer(j, field.Options[index])
	return nil
}

// SetDate stores a "mm/dd/yyyy" date for date field j of the current step.
// Malformed dates and dates outside the field bounds are rejected and leave
// the answer unchanged. An empty raw value clears the answer.
func (w *Wizard) SetDate(j int, raw string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	field, err := w.currentField(j)
	if err != nil {
		return err
	}
	if field.Type != models.FieldDate {
		return fmt.Errorf("%w: %s field", ErrWrongFieldType, field.Type)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		w.setAnswer(j, "")
		return nil
	}

	date, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	minDate, maxDate, err := field.DateBounds()
	if err != nil {
		return err
	}
	if (!minDate.IsZero() && date.Before(minDate)) || (!maxDate.IsZero() && date.After(maxDate)) {
		return fmt.Errorf("%w: %s", ErrDateOutOfRange, raw)
	}

	w.setAnswer(j, date.Format(models.DateLayout))
	return nil
}

// Next validates the current step. When it is valid the wizard moves to the
// following step, or submits on the last step. When it is not, the wizard
// stays on the step and returns ErrStepInvalid.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return ErrSubmitInProgress
	}
	if w.state != StateReady {
		w.mu.Unlock()
		return ErrNotReady
	}
	if !w.validateStep(w.current) {
		w.mu.Unlock()
		return ErrStepInvalid
	}
	if w.current < len(w.form.Steps)-1 {
		w.current++
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	return w.submit(ctx)
}

// Previous moves one step back without validation. It is a no-op on the
// first step.
func (w *Wizard) Previous() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateReady {
		return
	}
	w.current = max(0, w.current-1)
}

// submit posts all answers once Next has validated the last step. It returns
// ErrSubmitInProgress while another submission is outstanding. On failure
// the wizard returns to the last step with every answer intact and a
// top-level submit error.
func (w *Wizard) submit(ctx context.Context) error {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return ErrSubmitInProgress
	}
	if w.state != StateReady {
		w.mu.Unlock()
		return ErrNotReady
	}
	w.submitting = true
	w.state = StateSubmitting
	delete(w.fieldErrors, SubmitErrorKey)
	payload := w.payload()
	w.mu.Unlock()

	err := w.sink.Submit(ctx, w.pageKey, payload)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.submitting = false
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("page_key", w.pageKey).Msg("form submission failed")
		w.state = StateReady
		w.current = len(w.form.Steps) - 1
		w.fieldErrors[SubmitErrorKey] = msgSubmitFailed.in(w.locale)
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	w.state = StateSubmitted
	return nil
}

// SetLocale switches the display locale. Stored answers are unaffected.
func (w *Wizard) SetLocale(l locale.Locale) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.locale = l
}

func (w *Wizard) Locale() locale.Locale {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.locale
}

func (w *Wizard) PageKey() string {
	return w.pageKey
}

// SchemaVersion returns the version of the loaded form.
func (w *Wizard) SchemaVersion() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Version
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// CurrentStep returns the 0-based index of the visible step.
func (w *Wizard) CurrentStep() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *Wizard) TotalSteps() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.form.Steps)
}

// Progress returns (current step + 1) / total steps, or 0 without a form.
func (w *Wizard) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.form.Steps) == 0 {
		return 0
	}
	return float64(w.current+1) / float64(len(w.form.Steps))
}

// Answers returns a copy of all answers keyed by AnswerKey.
func (w *Wizard) Answers() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.answers)
}

// FieldErrors returns a copy of the current errors keyed by
// models.FieldErrorKey, plus SubmitErrorKey after a failed submission.
func (w *Wizard) FieldErrors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.fieldErrors)
}

// Payload returns the submission data built from the current answers.
func (w *Wizard) Payload() models.SubmissionData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payload()
}

// Content returns the page content, or nil when it could not be loaded.
func (w *Wizard) Content() *models.PageContent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.page
}

func (w *Wizard) payload() models.SubmissionData {
	data := make(models.SubmissionData, len(w.form.Steps))
	for i, step := range w.form.Steps {
		answers := make(map[string]any, len(step.Fields))
		for j := range step.Fields {
			answers[models.FieldKey(j)] = w.answers[AnswerKey(i, j)]
		}
		data[models.StepKey(i)] = answers
	}
	return data
}

// validateStep records an error for every required field of step k whose
// answer is blank. Errors of other steps are left alone.
func (w *Wizard) validateStep(k int) bool {
	valid := true
	for j, field := range w.form.Steps[k].Fields {
		key := models.FieldErrorKey(k, j)
		delete(w.fieldErrors, key)
		if field.Required && strings.TrimSpace(w.answers[AnswerKey(k, j)]) == "" {
			w.fieldErrors[key] = msgRequired.in(w.locale)
			valid = false
		}
	}
	return valid
}

func (w *Wizard) currentField(j int) (models.FormField, error) {
	if w.state != StateReady {
		return models.FormField{}, ErrNotReady
	}
	fields := w.form.Steps[w.current].Fields
	if j < 0 || j >= len(fields) {
		return models.FormField{}, fmt.Errorf("%w: %d", ErrFieldOutOfRange, j)
	}
	return fields[j], nil
}

// setAnswer stores value and clears the field error. Storing the value the
// field already holds keeps the error.
func (w *Wizard) setAnswer(j int, value string) {
	key := AnswerKey(w.current, j)
	if w.answers[key] == value {
		return
	}
	w.answers[key] = value
	delete(w.fieldErrors, models.FieldErrorKey(w.current, j))
}
