package main

import (
	"context"
	"os"
	"time"

	"davebot/internal/config"
	"davebot/internal/infrastructure"
	httpiface "davebot/internal/interfaces/http"
	"davebot/internal/usecases"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env file; absent is fine when the platform injects the
	// environment directly.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()

	if !cfg.AIConfigured() {
		log.Warn().Msg("Gemini API key missing or placeholder; AI mode will not work")
	}

	// Database connectivity check. The bot keeps no business data, so a
	// failure is logged and startup continues.
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := infrastructure.ProbeDatabase(ctx, cfg.DatabaseURL); err != nil {
			log.Error().Err(err).Msg("database unreachable (SQLite/Postgres)")
		} else {
			log.Info().Msg("database connection established")
		}
		cancel()
	}

	messenger := infrastructure.NewWhatsAppBusinessClient(cfg.AccessToken, cfg.PhoneID, log)
	aiClient := infrastructure.NewGeminiClient(cfg.GeminiAPIKey)
	messageService := usecases.NewMessageService(messenger, aiClient, cfg, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	httpiface.SetupRoutes(r, messageService, cfg, log)

	// The supervisor greps for this line to decide the deploy is live.
	log.Info().Str("port", cfg.Port).Msg("Dave-Bot started, listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}
