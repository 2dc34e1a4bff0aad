package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hamdi-4u/TaskManagerAPI/internal/api"
	"github.com/hamdi-4u/TaskManagerAPI/internal/auth"
	"github.com/hamdi-4u/TaskManagerAPI/internal/config"
	"github.com/hamdi-4u/TaskManagerAPI/internal/database"
	"github.com/hamdi-4u/TaskManagerAPI/internal/logger"
	"github.com/hamdi-4u/TaskManagerAPI/internal/monitoring"
	"github.com/hamdi-4u/TaskManagerAPI/internal/services"
	"github.com/hamdi-4u/TaskManagerAPI/internal/store"
	"github.com/hamdi-4u/TaskManagerAPI/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	auth.SetSecret(cfg.JWTSecret)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
	if cfg.SeedDemoData {
		if err := database.Seed(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up stores and services
	userStore := store.NewUserStore(db)
	taskStore := store.NewTaskStore(db)

	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(userStore, eventService)
	taskService := services.NewTaskService(taskStore, userStore, eventService)
	authService := services.NewAuthService(userStore, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// Set up and run the background overdue-task sweeper. A cron
	// expression takes precedence over the plain minute interval.
	var sweeper *monitoring.OverdueSweeper
	if cfg.OverdueSweepCron != "" {
		sweeper, err = monitoring.NewOverdueSweeperFromCron(db, eventService, cfg.OverdueSweepCron)
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.OverdueSweepCron).Msg("Invalid overdue sweep schedule")
		}
	} else {
		sweeper = monitoring.NewOverdueSweeper(db, eventService, time.Duration(cfg.OverdueSweepMinutes)*time.Minute)
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(hub, authService, userService, taskService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain in-flight requests before stopping the hub, so handlers can
	// still publish events while they finish.
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	sweeper.Stop()
	hub.Stop()

	log.Info().Msg("Server exiting")
}
