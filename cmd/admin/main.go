package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-site-forms/internal/adapter"
	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/publisher"
	"github.com/MKhiriev/go-site-forms/internal/utils"
)

var (
	schemaPath = flag.String("schema", "", "Form schema JSON file to publish")
	schemaPage = flag.String("schema-page", "", "Page key overriding the one in the schema file")
	checkOnly  = flag.Bool("check", false, "Validate the schema file without publishing it")
	listForms  = flag.Bool("list", false, "List stored forms")
)

func main() {
	log := logger.NewLogger("site-forms-admin")

	cfg, err := config.GetAdminConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}
	p := publisher.New(serverAdapter, utils.NewUUIDGenerator(), log)

	if err = run(ctx, p, cfg); err != nil {
		log.Fatal().Err(err).Msg("admin run error")
	}
}

func run(ctx context.Context, p *publisher.Publisher, cfg *config.AdminConfig) error {
	var schema publisher.Schema
	if *schemaPath != "" {
		f, err := os.Open(*schemaPath)
		if err != nil {
			return err
		}
		schema, err = publisher.ReadSchema(f, *schemaPage)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", *schemaPath, err)
		}
	}

	if *checkOnly {
		if *schemaPath == "" {
			return errors.New("-check needs -schema")
		}
		return p.Check(ctx, schema)
	}

	if !*listForms && *schemaPath == "" {
		flag.Usage()
		return nil
	}

	if err := cfg.CheckCredentials(); err != nil {
		return err
	}
	if err := p.Login(ctx, cfg.Login, cfg.Password); err != nil {
		return err
	}

	if *schemaPath != "" {
		version, err := p.Publish(ctx, schema)
		if err != nil {
			return err
		}
		fmt.Printf("%s: version %d\n", schema.PageKey, version)
	}

	if *listForms {
		forms, err := p.List(ctx)
		if err != nil {
			return err
		}
		for _, form := range forms {
			fmt.Printf("%s\tversion %d\t%d steps\n", form.PageKey, form.Version, len(form.Steps))
		}
	}
	return nil
}
