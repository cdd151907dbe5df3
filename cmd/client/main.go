package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-site-forms/internal/adapter"
	"github.com/MKhiriev/go-site-forms/internal/client"
	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/internal/tui"
	"github.com/MKhiriev/go-site-forms/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewClientLogger("site-forms-client", "")
	cfg, err := config.GetClientConfig()
	if err != nil {
		fatal(log, err, "error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		fatal(log, err, "create server adapter")
	}

	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		fatal(log, err, "create local storage")
	}
	defer storages.Close()

	ui := tui.New(serverAdapter, storages.DraftRepository, buildInfo, log)

	app, err := client.NewApp(ui, cfg, log)
	if err != nil {
		fatal(log, err, "init client app error")
	}

	if err = app.Run(); err != nil {
		storages.Close()
		fatal(log, err, "client run error")
	}
}

// fatal reports err on stderr as well, since the client log goes to a file.
func fatal(log *logger.Logger, err error, msg string) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	log.Fatal().Err(err).Msg(msg)
}
