package service

import (
	"context"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
)

type appInfoService struct {
	info models.ServerInfo

	logger *logger.Logger
}

// NewAppInfoService captures the version and locale settings once; they do
// not change while the server runs.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	defaultLocale := locale.Default
	if cfg.DefaultLocale != "" {
		defaultLocale = locale.Parse(cfg.DefaultLocale)
	}

	locales := make([]string, 0, len(locale.All()))
	for _, l := range locale.All() {
		locales = append(locales, l.String())
	}

	logger.Debug().
		Str("version", cfg.Version).
		Str("default_locale", defaultLocale.String()).
		Msg("app info ready")

	return &appInfoService{
		info: models.ServerInfo{
			Version:       cfg.Version,
			DefaultLocale: defaultLocale.String(),
			Locales:       locales,
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.info.Version
}

// GetServerInfo returns a copy the caller may modify.
func (s *appInfoService) GetServerInfo(_ context.Context) models.ServerInfo {
	info := s.info
	info.Locales = append([]string(nil), s.info.Locales...)
	return info
}
