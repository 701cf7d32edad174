package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-task-desk/internal/config"
	"github.com/MKhiriev/go-task-desk/internal/devbackend"
	"github.com/MKhiriev/go-task-desk/internal/handler"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/server"
	"github.com/MKhiriev/go-task-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("task-desk-devbackend")
	cfg, err := config.GetBackendConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("http_address", cfg.HTTPAddress).
		Str("token_issuer", cfg.TokenIssuer).
		Dur("token_duration", cfg.TokenDuration).
		Bool("seed", cfg.Seed).
		Msg("received configs")

	backend := devbackend.New(devbackend.Settings{
		Issuer:        cfg.TokenIssuer,
		SignKey:       cfg.TokenSignKey,
		TokenDuration: cfg.TokenDuration,
	}, log)

	if cfg.Seed {
		if err = backend.Seed(); err != nil {
			log.Fatal().Err(err).Msg("error seeding backend")
		}
		log.Info().Str("password", devbackend.SeedPassword).Msg("demo accounts created")
	}

	handlers, err := handler.NewHandlers(backend, *cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(context.Background()); err != nil {
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
