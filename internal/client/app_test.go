package client

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	err    error
	cfg    config.ClientWizard
	locale locale.Locale
}

func (f *fakeRunner) Run(_ context.Context, cfg config.ClientWizard, l locale.Locale) error {
	f.cfg = cfg
	f.locale = l
	return f.err
}

func newConfig() *config.ClientConfig {
	return &config.ClientConfig{
		App:    config.ClientApp{DefaultLocale: "hy"},
		Wizard: config.ClientWizard{PageKey: "register", RequireSignIn: true},
	}
}

func TestNewApp_RequiresUI(t *testing.T) {
	_, err := NewApp(nil, newConfig(), logger.Nop())
	require.Error(t, err)
}

func TestApp_Run(t *testing.T) {
	runner := &fakeRunner{}
	app, err := NewApp(runner, newConfig(), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run())
	assert.Equal(t, "register", runner.cfg.PageKey)
	assert.True(t, runner.cfg.RequireSignIn)
	assert.Equal(t, locale.Armenian, runner.locale)
}

func TestApp_RunQuitIsNotAnError(t *testing.T) {
	app, err := NewApp(&fakeRunner{err: tui.ErrUserQuit}, newConfig(), logger.Nop())
	require.NoError(t, err)
	assert.NoError(t, app.Run())
}

func TestApp_RunError(t *testing.T) {
	boom := errors.New("terminal gone")
	app, err := NewApp(&fakeRunner{err: boom}, newConfig(), logger.Nop())
	require.NoError(t, err)
	assert.ErrorIs(t, app.Run(), boom)
}
