package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nvalverde/tourvia-be/internal/api"
	"github.com/nvalverde/tourvia-be/internal/config"
	"github.com/nvalverde/tourvia-be/internal/database"
	"github.com/nvalverde/tourvia-be/internal/logger"
	"github.com/nvalverde/tourvia-be/internal/monitoring"
	"github.com/nvalverde/tourvia-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, eventService)
	sessionService := services.NewSessionService(db)
	catalogService := services.NewCatalogService(db)
	availabilityService := services.NewAvailabilityService(db)
	orderService := services.NewOrderService(db, eventService)

	// Set up and run the background session sweeper
	sweeper := monitoring.NewSessionSweeper(sessionService, cfg.SweepSchedule)
	if err := sweeper.Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start session sweeper")
	}

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		DB:           db,
		Users:        userService,
		Sessions:     sessionService,
		Catalog:      catalogService,
		Availability: availabilityService,
		Orders:       orderService,
		Events:       eventService,
		CORSOrigin:   cfg.CORSOrigin,
		SecureCookie: cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
