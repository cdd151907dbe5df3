// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-site-forms/internal/locale"
)

// validate checks the invariants every runtime shares: a known default
// locale and non-negative durations.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.DefaultLocale != "" && !locale.IsSupported(cfg.App.DefaultLocale) {
		return fmt.Errorf("%w: unsupported default locale %q", ErrInvalidAppConfigs, cfg.App.DefaultLocale)
	}

	if cfg.App.TokenDuration < 0 || cfg.Server.RequestTimeout < 0 || cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidAppConfigs)
	}

	return nil
}

// validateServer checks what the HTTP server cannot start without.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.Files.UploadDir == "" {
		return fmt.Errorf("%w: upload directory is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidServerConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DraftsDSN == "" || strings.Contains(cfg.Storage.DraftsDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.DefaultLocale != "" && !locale.IsSupported(cfg.App.DefaultLocale) {
		return ErrInvalidAppConfigs
	}

	if strings.TrimSpace(cfg.Wizard.PageKey) == "" {
		return ErrInvalidWizardConfigs
	}

	return nil
}
