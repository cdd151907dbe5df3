package wizard

import (
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/models"
)

// FieldView is a field of the current step resolved for display.
type FieldView struct {
	Index       int
	Key         string
	Type        models.FieldType
	Label       string
	Placeholder string
	Required    bool
	// Options holds the option labels in the display locale. Selecting index
	// i stores the base-locale option i.
	Options  []string
	Selected int
	MinDate  string
	MaxDate  string
	Value    string
	Error    string
}

// StepView is the current step resolved for display.
type StepView struct {
	Index       int
	Total       int
	Title       string
	Fields      []FieldView
	IsFirst     bool
	IsLast      bool
	SubmitError string
}

// CurrentView resolves the visible step in the active locale. It reports
// false when the wizard has no form loaded.
func (w *Wizard) CurrentView() (StepView, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.form.Steps) == 0 {
		return StepView{}, false
	}

	i := w.current
	step := w.form.Steps[i]
	view := StepView{
		Index:       i,
		Total:       len(w.form.Steps),
		Title:       locale.Resolve(step.Title, step.TitleHy, w.locale),
		Fields:      make([]FieldView, len(step.Fields)),
		IsFirst:     i == 0,
		IsLast:      i == len(w.form.Steps)-1,
		SubmitError: w.fieldErrors[SubmitErrorKey],
	}

	for j, field := range step.Fields {
		value := w.answers[AnswerKey(i, j)]
		fv := FieldView{
			Index:       j,
			Key:         models.FieldErrorKey(i, j),
			Type:        field.Type,
			Label:       locale.Resolve(field.Label, field.LabelHy, w.locale),
			Placeholder: locale.Resolve(field.Placeholder, field.PlaceholderHy, w.locale),
			Required:    field.Required,
			Selected:    -1,
			MinDate:     field.MinDate,
			MaxDate:     field.MaxDate,
			Value:       value,
			Error:       w.fieldErrors[models.FieldErrorKey(i, j)],
		}
		if field.Type == models.FieldSelect {
			fv.Options = make([]string, len(field.Options))
			for k, option := range field.Options {
				fv.Options[k] = locale.ResolveOption(field.Options, field.OptionsHy, k, w.locale)
				if value != "" && option == value {
					fv.Selected = k
				}
			}
		}
		view.Fields[j] = fv
	}

	return view, true
}
