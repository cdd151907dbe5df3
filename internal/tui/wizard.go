package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/wizard"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldInput is the editor of one field of the visible step. Select fields
// have neither editor and are changed with left/right.
type fieldInput struct {
	view wizard.FieldView
	text textinput.Model
	area textarea.Model
}

func newFieldInput(fv wizard.FieldView) fieldInput {
	in := fieldInput{view: fv}

	switch fv.Type {
	case models.FieldTextarea:
		in.area = textarea.New()
		in.area.Placeholder = fv.Placeholder
		in.area.ShowLineNumbers = false
		in.area.SetWidth(50)
		in.area.SetHeight(3)
		in.area.SetValue(fv.Value)
	case models.FieldInput, models.FieldDate:
		in.text = textinput.New()
		in.text.Placeholder = fv.Placeholder
		if fv.Type == models.FieldDate {
			in.text.Placeholder = models.DateLayoutHint
			in.text.CharLimit = len(models.DateLayoutHint)
		}
		in.text.Width = 50
		in.text.SetValue(fv.Value)
	}
	return in
}

func (in *fieldInput) focus() {
	switch in.view.Type {
	case models.FieldTextarea:
		in.area.Focus()
	case models.FieldInput, models.FieldDate:
		in.text.Focus()
	}
}

func (in *fieldInput) blur() {
	in.area.Blur()
	in.text.Blur()
}

func (in *fieldInput) value() string {
	if in.view.Type == models.FieldTextarea {
		return in.area.Value()
	}
	return in.text.Value()
}

// WizardModel renders a [wizard.Wizard] step by step and keeps a draft of
// the answers after every navigation.
type WizardModel struct {
	ctx    context.Context
	wizard *wizard.Wizard
	drafts store.DraftRepository
	gate   *identity.Gate

	fields []fieldInput
	step   int
	focus  int

	loading bool
	busy    bool
	status  string
	errMsg  string
}

// NewWizardModel creates the wizard page. gate may be nil when the form is
// not behind a sign-in.
func NewWizardModel(ctx context.Context, w *wizard.Wizard, drafts store.DraftRepository, gate *identity.Gate) *WizardModel {
	return &WizardModel{
		ctx:     ctx,
		wizard:  w,
		drafts:  drafts,
		gate:    gate,
		loading: true,
	}
}

func (m *WizardModel) Init() tea.Cmd {
	return m.cmdLoad()
}

// Submitted reports whether the answers were accepted by the server.
func (m *WizardModel) Submitted() bool {
	return m.wizard.State() == wizard.StateSubmitted
}

func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wizardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err, m.wizard.Locale())
		}
		if msg.restored {
			m.status = m.text(msgRestored)
		}
		m.syncFields()
		return m, nil

	case stepDoneMsg:
		m.busy = false
		m.syncFields()
		if m.Submitted() {
			m.status = m.text(msgSubmitted)
			return m, m.cmdDeleteDraft()
		}
		switch {
		case msg.err == nil, errors.Is(msg.err, wizard.ErrStepInvalid), errors.Is(msg.err, wizard.ErrSubmissionFailed):
			// field and submit errors are shown by the step view
		default:
			m.errMsg = humanizeError(msg.err, m.wizard.Locale())
		}
		return m, m.cmdSaveDraft()

	case draftSavedMsg:
		if msg.err != nil {
			m.status = m.text(msgDraftFailed) + ": " + msg.err.Error()
		}
		return m, nil

	case draftDeletedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateFocused(msg)
}

func (m *WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.wizard.State()
	if state == wizard.StateSubmitted || state == wizard.StateNotFound {
		if key.Matches(msg, keys.enter) || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.loading || m.busy {
		return m, nil
	}

	focused := m.focusedField()

	switch {
	case key.Matches(msg, keys.tab):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, keys.locale):
		m.commitFields()
		m.wizard.SetLocale(otherLocale(m.wizard.Locale()))
		m.syncFields()
		return m, nil
	case key.Matches(msg, keys.back):
		m.commitFields()
		m.wizard.Previous()
		m.syncFields()
		return m, m.cmdSaveDraft()
	case key.Matches(msg, keys.next),
		key.Matches(msg, keys.enter) && (focused == nil || focused.view.Type != models.FieldTextarea):
		if !m.commitFields() {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.cmdNext()
	case focused != nil && focused.view.Type == models.FieldSelect &&
		(key.Matches(msg, keys.left) || key.Matches(msg, keys.right)):
		m.cycleOption(focused, key.Matches(msg, keys.right))
		return m, nil
	}

	return m, m.updateFocused(msg)
}

// commitFields writes edited values into the wizard. Untouched editors are
// skipped so their field errors stay visible. It reports false when a date
// was rejected.
func (m *WizardModel) commitFields() bool {
	ok := true
	for i := range m.fields {
		f := &m.fields[i]
		if f.value() == f.view.Value {
			continue
		}
		switch f.view.Type {
		case models.FieldInput, models.FieldTextarea:
			if err := m.wizard.SetAnswer(f.view.Index, f.value()); err != nil {
				m.errMsg = err.Error()
				ok = false
			}
		case models.FieldDate:
			if err := m.wizard.SetDate(f.view.Index, f.value()); err != nil {
				m.errMsg = fmt.Sprintf("%s: %s", f.view.Label, err)
				ok = false
			}
		}
	}
	return ok
}

func (m *WizardModel) cycleOption(f *fieldInput, forward bool) {
	n := len(f.view.Options)
	if n == 0 {
		return
	}

	next := f.view.Selected
	switch {
	case next < 0:
		next = 0
	case forward:
		next = (next + 1) % n
	default:
		next = (next - 1 + n) % n
	}

	index := f.view.Index
	m.commitFields()
	if err := m.wizard.SelectOption(index, next); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.syncFields()
}

// syncFields rebuilds the editors from the wizard. Focus survives when the
// visible step did not change.
func (m *WizardModel) syncFields() {
	view, ok := m.wizard.CurrentView()
	if !ok {
		m.fields = nil
		return
	}

	if view.Index != m.step {
		m.focus = 0
	}
	m.step = view.Index

	m.fields = make([]fieldInput, len(view.Fields))
	for j, fv := range view.Fields {
		m.fields[j] = newFieldInput(fv)
	}
	m.focus = min(m.focus, max(len(m.fields)-1, 0))
	if f := m.focusedField(); f != nil {
		f.focus()
	}
}

func (m *WizardModel) moveFocus(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.fields[m.focus].blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].focus()
}

func (m *WizardModel) focusedField() *fieldInput {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focus]
}

func (m *WizardModel) updateFocused(msg tea.Msg) tea.Cmd {
	f := m.focusedField()
	if f == nil {
		return nil
	}

	var cmd tea.Cmd
	switch f.view.Type {
	case models.FieldTextarea:
		f.area, cmd = f.area.Update(msg)
	case models.FieldInput, models.FieldDate:
		f.text, cmd = f.text.Update(msg)
	}
	return cmd
}

func (m *WizardModel) View() string {
	title := strings.ToUpper(m.wizard.PageKey())

	switch {
	case m.loading:
		return renderPage(title, m.text(msgLoading), "")
	case m.wizard.State() == wizard.StateNotFound:
		return renderPage(title, m.withErr(m.text(msgNotFound)), "enter: quit")
	case m.Submitted():
		return renderPage(title, okStyle.Render(m.status), "enter: quit")
	}

	view, ok := m.wizard.CurrentView()
	if !ok {
		return renderPage(title, m.withErr(""), "")
	}

	var b strings.Builder
	if m.gate != nil && m.gate.Authenticated() {
		u := m.gate.User()
		fmt.Fprintf(&b, "%s %s <%s>\n\n", m.text(msgSignedIn), u.Name, u.Email)
	}

	fmt.Fprintf(&b, "%s %d %s %d  %s\n", m.text(msgStep), view.Index+1, m.text(msgOf), view.Total, progressBar(m.wizard.Progress()))
	b.WriteString(titleStyle.Render(view.Title))
	b.WriteString("\n\n")

	for j, f := range m.fields {
		b.WriteString(m.renderField(j, f))
	}

	if view.SubmitError != "" {
		b.WriteString(errorStyle.Render(view.SubmitError))
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString(m.text(msgSending))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}

	next := "enter: next"
	if view.IsLast {
		next = "enter: submit"
	}
	hotKeys := []string{next, "tab: next field", "←/→: option", "ctrl+l: EN/HY", "ctrl+v: about"}
	if !view.IsFirst {
		hotKeys = append(hotKeys, "esc: back")
	}

	return renderPage(title, m.withErr(strings.TrimRight(b.String(), "\n")), strings.Join(hotKeys, " │ "))
}

func (m *WizardModel) renderField(j int, f fieldInput) string {
	var b strings.Builder

	marker := "  "
	label := f.view.Label
	if j == m.focus {
		marker = "> "
		label = focusedStyle.Render(label)
	}
	b.WriteString(marker)
	b.WriteString(label)
	if f.view.Required {
		b.WriteString(requiredStyle.Render(" *"))
	}
	b.WriteString("\n  ")

	switch f.view.Type {
	case models.FieldTextarea:
		b.WriteString(strings.ReplaceAll(f.area.View(), "\n", "\n  "))
	case models.FieldSelect:
		b.WriteString(renderOptions(f.view))
	default:
		b.WriteString("[")
		b.WriteString(f.text.View())
		b.WriteString("]")
	}
	b.WriteString("\n")

	if f.view.Error != "" {
		b.WriteString("  ")
		b.WriteString(errorStyle.Render(f.view.Error))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderOptions(fv wizard.FieldView) string {
	if fv.Selected < 0 {
		if fv.Placeholder != "" {
			return "‹ " + helpStyle.Render(fv.Placeholder) + " ›"
		}
		return "‹ - ›"
	}
	return "‹ " + fitText(fv.Options[fv.Selected], 48) + " ›"
}

func (m *WizardModel) withErr(body string) string {
	if m.errMsg == "" {
		return body
	}
	return body + "\n\n" + errorStyle.Render(m.errMsg)
}

func (m *WizardModel) text(msg [2]string) string {
	return locale.Resolve(msg[0], msg[1], m.wizard.Locale())
}
