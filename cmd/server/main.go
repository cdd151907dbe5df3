package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/handler"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/server"
	"github.com/MKhiriev/go-site-forms/internal/service"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("site-forms-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("public_url", cfg.Server.PublicURL).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
