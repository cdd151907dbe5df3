package service

import (
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
)

type Services struct {
	FormService       FormService
	SubmissionService SubmissionService
	ContentService    ContentService
	AuthService       AuthService
	IdentityService   IdentityService
	UploadService     UploadService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	formService := NewFormValidationService().Wrap(NewFormService(storages.FormRepository, logger))

	return &Services{
		FormService:       formService,
		SubmissionService: NewSubmissionService(storages.FormRepository, storages.SubmissionRepository, logger),
		ContentService:    NewContentService(storages.ContentRepository, cfg.Content, logger),
		AuthService:       NewAuthService(storages.AdminRepository, cfg.App, logger),
		IdentityService:   NewIdentityService(cfg, logger),
		UploadService:     NewUploadService(storages.FileStorage, logger),
		AppInfoService:    appInfoService,
	}, nil
}
