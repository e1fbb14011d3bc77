package cmd

import (
	"context"
	"fmt"
	"time"

	"w3dash/config"
	"w3dash/dashboard"
	"w3dash/events"
	"w3dash/infrastructure/observability"
	"w3dash/models"
	"w3dash/service"
	"w3dash/w3c"
	"w3dash/worker"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the dashboard for playerID and blocks until it exits
func Run(ctx context.Context, playerID string) error {
	// Load configuration
	cfg := config.Get()

	logFile, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logFile.Close()

	log.WithFields(log.Fields{
		"player":      playerID,
		"environment": cfg.Environment,
		"tick":        cfg.TickInterval,
	}).Info("Starting w3dash...")

	// Initialize metrics
	metrics := observability.NewMetricsProvider(cfg, logFile)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Error shutting down metrics provider")
		}
	}()

	// Initialize event bus
	eventBus := events.NewBus()
	subscribeHandlers(eventBus, metrics)

	// Initialize services
	client := w3c.NewClient(w3c.Config{
		StatsHost: cfg.StatsHost,
		WebHost:   cfg.WebHost,
		Gateway:   cfg.Gateway,
		Season:    cfg.Season,
	})
	profileService := service.NewProfileService(client, metrics)
	matchService := service.NewMatchService(client, profileService, metrics)

	// The self profile is fetched once; only the opponent changes afterwards
	data := &models.Data{
		SelfID: playerID,
		User:   profileService.FetchProfile(ctx, playerID),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dash := dashboard.New()
	signals, stopTicker := worker.StartTicker(ctx, cfg.TickInterval)
	defer stopTicker()
	loop := worker.NewRefreshLoop(data, matchService, dash, eventBus)

	loopErr := make(chan error, 1)
	go func() {
		err := loop.Run(ctx, signals)
		if err != nil {
			dash.Stop()
		}
		loopErr <- err
	}()
	go func() {
		<-ctx.Done()
		dash.Stop()
	}()

	runErr := dash.Run()
	cancel()
	if runErr != nil {
		return fmt.Errorf("terminal error: %w", runErr)
	}
	if err := <-loopErr; err != nil {
		return err
	}

	log.Info("Shutdown completed")
	return nil
}
