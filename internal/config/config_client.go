package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// DefaultLocale is the locale the wizard opens in.
	DefaultLocale string
	// Version is reported next to the server version in the status bar.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DraftsDSN is the SQLite file that keeps unfinished wizard answers.
	DraftsDSN string
}

// ClientWizard selects the form of the client run.
type ClientWizard struct {
	PageKey       string
	RequireSignIn bool
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Wizard  ClientWizard
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			DefaultLocale: cfg.App.DefaultLocale,
			Version:       cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DraftsDSN: cfg.Storage.Drafts.DSN,
		},
		Wizard: ClientWizard{
			PageKey:       cfg.Wizard.PageKey,
			RequireSignIn: cfg.Wizard.RequireSignIn,
		},
	}

	return clientCfg, clientCfg.validate()
}
