package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-task-desk/internal/adapter"
	"github.com/MKhiriev/go-task-desk/internal/client"
	"github.com/MKhiriev/go-task-desk/internal/config"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/service"
	"github.com/MKhiriev/go-task-desk/internal/store"
	"github.com/MKhiriev/go-task-desk/internal/tui"
	"github.com/MKhiriev/go-task-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("task-desk-client", cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	feed := realtime.NewWebsocketFeed(realtime.Settings{
		BaseURL:           cfg.Realtime.Address,
		APIKey:            cfg.App.APIKey,
		HeartbeatInterval: cfg.Realtime.HeartbeatInterval,
		JoinTimeout:       cfg.Realtime.JoinTimeout,
	}, log)

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer func() {
		if closeErr := localStorage.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("close local storage")
		}
	}()

	services := service.NewClientServices(
		serverAdapter,
		feed,
		localStorage.SessionRepository,
		localStorage.NotificationRepository,
		*cfg,
		log,
	)

	ui := tui.New(services, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)

	app, err := client.NewApp(services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "client run error: %v\n", err)
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
