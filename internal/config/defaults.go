package config

import (
	"strings"
	"time"
)

// Defaults returns the configuration used when no source sets a value.
// Secrets and the database DSN have no defaults.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-site-forms",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
			DefaultLocale: "en",
		},
		Storage: Storage{
			Files:  Files{UploadDir: "uploads"},
			Drafts: Drafts{DSN: "drafts.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			PublicURL:      "http://localhost:8080",
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Wizard: Wizard{PageKey: "register"},
	}
}

// SessionKey returns the key that signs visitor session cookies.
func (cfg *StructuredConfig) SessionKey() string {
	if cfg.App.SessionSignKey != "" {
		return cfg.App.SessionSignKey
	}
	return cfg.App.TokenSignKey
}

// OAuthRedirectURL returns the Google callback URL, derived from the public
// URL unless set explicitly.
func (cfg *StructuredConfig) OAuthRedirectURL() string {
	if cfg.OAuth.RedirectURL != "" {
		return cfg.OAuth.RedirectURL
	}
	return strings.TrimRight(cfg.Server.PublicURL, "/") + "/auth/google/callback"
}
