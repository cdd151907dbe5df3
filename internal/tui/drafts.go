package tui

import (
	"errors"

	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/wizard"
	"github.com/MKhiriev/go-site-forms/models"
	tea "github.com/charmbracelet/bubbletea"
)

// cmdLoad loads the form and its content, then resumes the saved draft of
// the page. A draft of another schema version is dropped.
func (m *WizardModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	w := m.wizard
	drafts := m.drafts

	return func() tea.Msg {
		if err := w.Load(ctx); err != nil {
			return wizardLoadedMsg{err: err}
		}
		if w.State() != wizard.StateReady || drafts == nil {
			return wizardLoadedMsg{}
		}

		log := logger.FromContext(ctx)

		draft, err := drafts.GetDraft(ctx, w.PageKey())
		if errors.Is(err, store.ErrDraftNotFound) {
			return wizardLoadedMsg{}
		}
		if err != nil {
			log.Err(err).Str("page_key", w.PageKey()).Msg("failed to read draft")
			return wizardLoadedMsg{}
		}

		if draft.SchemaVersion != w.SchemaVersion() {
			log.Info().
				Str("page_key", w.PageKey()).
				Int64("draft_version", draft.SchemaVersion).
				Int64("form_version", w.SchemaVersion()).
				Msg("dropping draft of another form version")
			if err = drafts.DeleteDraft(ctx, w.PageKey()); err != nil {
				log.Err(err).Str("page_key", w.PageKey()).Msg("failed to delete stale draft")
			}
			return wizardLoadedMsg{}
		}

		if locale.IsSupported(draft.Locale) {
			w.SetLocale(locale.Locale(draft.Locale))
		}
		if err = w.Restore(draft.Data, draft.Step); err != nil {
			return wizardLoadedMsg{err: err}
		}
		return wizardLoadedMsg{restored: true}
	}
}

func (m *WizardModel) cmdNext() tea.Cmd {
	ctx := m.ctx
	w := m.wizard

	return func() tea.Msg {
		return stepDoneMsg{err: w.Next(ctx)}
	}
}

func (m *WizardModel) cmdSaveDraft() tea.Cmd {
	if m.drafts == nil || m.wizard.State() != wizard.StateReady {
		return nil
	}

	ctx := m.ctx
	drafts := m.drafts
	draft := models.Draft{
		PageKey:       m.wizard.PageKey(),
		Locale:        m.wizard.Locale().String(),
		Step:          m.wizard.CurrentStep(),
		SchemaVersion: m.wizard.SchemaVersion(),
		Data:          m.wizard.Payload(),
	}

	return func() tea.Msg {
		return draftSavedMsg{err: drafts.SaveDraft(ctx, draft)}
	}
}

func (m *WizardModel) cmdDeleteDraft() tea.Cmd {
	if m.drafts == nil {
		return nil
	}

	ctx := m.ctx
	drafts := m.drafts
	pageKey := m.wizard.PageKey()

	return func() tea.Msg {
		return draftDeletedMsg{err: drafts.DeleteDraft(ctx, pageKey)}
	}
}
