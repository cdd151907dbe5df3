package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/go-site-forms/internal/adapter"
	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/wizard"
	"github.com/MKhiriev/go-site-forms/models"
	tea "github.com/charmbracelet/bubbletea"
)

const versionTimeout = 3 * time.Second

type TUI struct {
	adapter   adapter.ServerAdapter
	drafts    store.DraftRepository
	gate      *identity.Gate
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(serverAdapter adapter.ServerAdapter, drafts store.DraftRepository, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		adapter:   serverAdapter,
		drafts:    drafts,
		gate:      identity.NewGate(),
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Run shows the form of cfg.PageKey until it is submitted or the user quits.
// With cfg.RequireSignIn the identity gate is shown first.
func (t *TUI) Run(ctx context.Context, cfg config.ClientWizard, l locale.Locale) error {
	ctx = t.logger.WithPage(cfg.PageKey).WithContext(ctx)

	w := wizard.New(cfg.PageKey, l, t.adapter, t.adapter, t.adapter)

	var gate *identity.Gate
	if cfg.RequireSignIn {
		gate = t.gate
	}

	pages := map[string]tea.Model{
		pageWizard: NewWizardModel(ctx, w, t.drafts, gate),
	}
	start := pageWizard
	if gate != nil {
		pages[pageSignIn] = NewSignInModel(gate, t.adapter.SignInURL(cfg.PageKey, l), l, t.adapter.SetSession)
		start = pageSignIn
	}

	root := NewRootModel(pages, start, t.buildInfo, t.serverVersion(ctx))
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	t.logger.Info().Str("page_key", cfg.PageKey).Bool("submitted", result.Submitted()).Msg("wizard closed")
	return nil
}

func (t *TUI) serverVersion(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	v, err := t.adapter.Version(ctx)
	if err != nil {
		t.logger.Err(err).Msg("failed to get server version")
		return ""
	}
	return v
}
