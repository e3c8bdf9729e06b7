package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fbaudier/interclubs/internal/championship"
	"github.com/fbaudier/interclubs/internal/club"
	"github.com/fbaudier/interclubs/internal/config"
	"github.com/fbaudier/interclubs/internal/database"
	server "github.com/fbaudier/interclubs/internal/http"
	"github.com/fbaudier/interclubs/internal/metrics"
	"github.com/fbaudier/interclubs/internal/notifier/slack"
	"github.com/fbaudier/interclubs/internal/pubsub"
	"github.com/fbaudier/interclubs/internal/ranking"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	log.Info("Starting interclubs service")

	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer teardown()

	clubStore := club.New(db)
	if _, err := clubStore.LoadLadder(); err != nil {
		log.Info("No ranking ladder found, seeding the default one")
		if err := clubStore.SeedLadder(ranking.DefaultLadder()); err != nil {
			log.Fatal("Failed to seed ranking ladder", "error", err)
		}
	}

	championshipStore := championship.New(db)
	metricsService := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	metricsStore := metrics.New(db)
	slackNotifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsService)
	pubsubClient := pubsub.New(cfg.ProjectID)

	orchestrator := championship.NewOrchestrator(championshipStore, clubStore, slackNotifier, metricsService, pubsubClient, nil)

	srv := server.NewServer(championshipStore, clubStore, orchestrator, metricsService, metricsStore, metricsHandler, cfg, slackNotifier, pubsubClient)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", "port", cfg.Port)
		serverErrors <- httpServer.ListenAndServe()
	}()

	metricsService.SetStartupTime(time.Since(startTime).Seconds())
	log.Info("Service ready", "startupTime", time.Since(startTime))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", "error", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", "error", err)
			if err := httpServer.Close(); err != nil {
				log.Fatal("Could not stop server", "error", err)
			}
		}
	}
}
