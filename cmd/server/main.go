package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wordrush/internal/config"
	"wordrush/internal/database"
	"wordrush/internal/handlers"
	"wordrush/internal/repository"
	"wordrush/internal/service"
	"wordrush/internal/validation"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg.DatabaseType, cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Str("type", cfg.DatabaseType).Msg("database connection established")

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	wordRepo := repository.NewWordRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository()

	// Initialize services
	matcher := validation.NewMatcher(cfg.DiacriticLetters)
	leaderboardService := service.NewLeaderboardService(db, sessionRepo, leaderboardRepo)
	sessionService := service.NewSessionService(
		db, sessionRepo, promptRepo, wordRepo, matcher, leaderboardService,
		cfg.GameDurationSeconds, cfg.TargetWords,
	)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Setup routes
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))
	r.Use(handlers.CORS(cfg.ClientOrigin))
	r.Use(handlers.RequestLogger)

	r.Get("/health", handlers.Health)
	r.Post("/sessions", sessionHandler.Create)
	r.Get("/sessions/{id}", sessionHandler.Get)
	r.Post("/sessions/{id}/attempt", sessionHandler.Attempt)
	r.Post("/sessions/{id}/publish", leaderboardHandler.Publish)
	r.Get("/leaderboard", leaderboardHandler.Top)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
