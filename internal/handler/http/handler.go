package http

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/service"
)

const (
	// maxBodyBytes limits JSON request bodies.
	maxBodyBytes = 1 << 20
	// maxUploadBytes limits multipart image uploads.
	maxUploadBytes = 10 << 20
)

type Handler struct {
	services *service.Services

	// publicURL prefixes the redirects back to the site after sign-in.
	publicURL      string
	uploadDir      string
	secureCookies  bool
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	publicURL := strings.TrimRight(cfg.Server.PublicURL, "/")
	return &Handler{
		services:       services,
		publicURL:      publicURL,
		uploadDir:      cfg.Storage.Files.UploadDir,
		secureCookies:  strings.HasPrefix(publicURL, "https://"),
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
