package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/tui"
)

var _ Client = (*App)(nil)

type App struct {
	ui     Runner
	cfg    *config.ClientConfig
	logger *logger.Logger
}

func NewApp(ui Runner, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errors.New("client ui is not set")
	}
	return &App{ui: ui, cfg: cfg, logger: logger}, nil
}

// Run opens the configured form and blocks until it is submitted or the
// user quits. Quitting is not an error.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	l := locale.Parse(a.cfg.App.DefaultLocale)
	a.logger.Info().Str("page_key", a.cfg.Wizard.PageKey).Str("locale", l.String()).Msg("starting wizard")

	err := a.ui.Run(ctx, a.cfg.Wizard, l)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("wizard closed by user")
		return nil
	}
	if err != nil {
		return fmt.Errorf("wizard run: %w", err)
	}
	return nil
}
